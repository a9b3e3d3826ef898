package checkin

import (
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/belphemur/mood-checkin/internal/constants"
)

// Validate parses the raw per-day values of a form.
// Every day is checked, so a single call reports all offending days at once.
// The result is accepted only if all seven days hold a rating in [MinRating, MaxRating].
func Validate(raw map[constants.Weekday]string) (Ratings, error) {
	var errs *multierror.Error
	ratings := make(Ratings, len(constants.ValidDaysOfWeek))

	for _, day := range constants.Weekdays() {
		value, ok := raw[day]
		if !ok {
			errs = multierror.Append(errs, &DayError{Day: day, Err: ErrMissing})
			continue
		}
		rating, err := parseRating(value)
		if err != nil {
			errs = multierror.Append(errs, &DayError{Day: day, Value: value, Err: err})
			continue
		}
		ratings[day] = rating
	}

	if errs != nil {
		return nil, newValidationError(errs)
	}
	return ratings, nil
}

func parseRating(value string) (int, error) {
	if !isDigits(value) {
		return 0, ErrNotANumber
	}
	rating, err := strconv.Atoi(value)
	if err != nil {
		// only digits reach here, so the sole failure is overflow
		return 0, ErrOutOfRange
	}
	if rating < constants.MinRating || rating > constants.MaxRating {
		return 0, ErrOutOfRange
	}
	return rating, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
