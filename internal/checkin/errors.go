package checkin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/belphemur/mood-checkin/internal/constants"
)

var (
	// ErrMissing is reported when a day has no rating at all
	ErrMissing = errors.New("no rating entered")
	// ErrNotANumber is reported when a rating is not a string of decimal digits
	ErrNotANumber = errors.New("not a whole number")
	// ErrOutOfRange is reported when a rating falls outside [MinRating, MaxRating]
	ErrOutOfRange = fmt.Errorf("outside the range %d to %d", constants.MinRating, constants.MaxRating)
)

// RangeReminder is the closing notification of every rejected submission
const RangeReminder = "Please enter valid mood ratings between 1 and 5 for each day."

// DayError describes why the rating of one day was rejected
type DayError struct {
	Day   constants.Weekday
	Value string
	Err   error
}

func (e *DayError) Error() string {
	if errors.Is(e.Err, ErrMissing) {
		return fmt.Sprintf("%s: %v", e.Day, e.Err)
	}
	return fmt.Sprintf("%s: %q is %v", e.Day, e.Value, e.Err)
}

func (e *DayError) Unwrap() error {
	return e.Err
}

// Message returns the notification shown to the user for this day
func (e *DayError) Message() string {
	if errors.Is(e.Err, ErrOutOfRange) {
		return fmt.Sprintf("Mood rating for %s must be between %d and %d, got %s",
			e.Day, constants.MinRating, constants.MaxRating, e.Value)
	}
	return fmt.Sprintf("Please enter a valid integer mood rating for %s", e.Day)
}

// ValidationError collects every rejected day of a submission
type ValidationError struct {
	errs *multierror.Error
}

func newValidationError(errs *multierror.Error) *ValidationError {
	errs.ErrorFormat = func(list []error) string {
		parts := make([]string, len(list))
		for i, err := range list {
			parts[i] = err.Error()
		}
		return fmt.Sprintf("invalid mood ratings: %s", strings.Join(parts, "; "))
	}
	return &ValidationError{errs: errs}
}

func (e *ValidationError) Error() string {
	return e.errs.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.errs
}

// Problems returns the per-day errors in week order
func (e *ValidationError) Problems() []*DayError {
	problems := make([]*DayError, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		var dayErr *DayError
		if errors.As(err, &dayErr) {
			problems = append(problems, dayErr)
		}
	}
	return problems
}

// Days returns the offending days in week order
func (e *ValidationError) Days() []constants.Weekday {
	problems := e.Problems()
	days := make([]constants.Weekday, len(problems))
	for i, p := range problems {
		days[i] = p.Day
	}
	return days
}

// PersistenceError reports that an accepted check-in could not be written
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist check-in to %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
