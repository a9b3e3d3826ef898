package checkin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belphemur/mood-checkin/internal/constants"
)

func rawWeek(values ...string) map[constants.Weekday]string {
	raw := make(map[constants.Weekday]string)
	for i, day := range constants.Weekdays() {
		if i < len(values) {
			raw[day] = values[i]
		}
	}
	return raw
}

func TestValidate_AcceptsFullWeek(t *testing.T) {
	ratings, err := Validate(rawWeek("3", "4", "5", "2", "3", "4", "5"))
	require.NoError(t, err)

	assert.Equal(t, Ratings{
		constants.Monday: 3, constants.Tuesday: 4, constants.Wednesday: 5, constants.Thursday: 2,
		constants.Friday: 3, constants.Saturday: 4, constants.Sunday: 5,
	}, ratings)
}

func TestValidate_AcceptsBounds(t *testing.T) {
	ratings, err := Validate(rawWeek("1", "5", "1", "5", "1", "5", "01"))
	require.NoError(t, err)
	assert.Len(t, ratings, 7)
	assert.Equal(t, 1, ratings[constants.Sunday])
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[constants.Weekday]string
		days     []constants.Weekday
		sentinel error
	}{
		{
			name:     "non digit on Tuesday",
			raw:      rawWeek("3", "abc", "5", "2", "3", "4", "5"),
			days:     []constants.Weekday{constants.Tuesday},
			sentinel: ErrNotANumber,
		},
		{
			name:     "out of range on Wednesday",
			raw:      rawWeek("3", "4", "7", "2", "3", "4", "5"),
			days:     []constants.Weekday{constants.Wednesday},
			sentinel: ErrOutOfRange,
		},
		{
			name:     "zero is out of range",
			raw:      rawWeek("0", "4", "5", "2", "3", "4", "5"),
			days:     []constants.Weekday{constants.Monday},
			sentinel: ErrOutOfRange,
		},
		{
			name:     "negative is not digits",
			raw:      rawWeek("3", "4", "5", "-2", "3", "4", "5"),
			days:     []constants.Weekday{constants.Thursday},
			sentinel: ErrNotANumber,
		},
		{
			name:     "decimal is not digits",
			raw:      rawWeek("3", "4", "5", "2", "3.5", "4", "5"),
			days:     []constants.Weekday{constants.Friday},
			sentinel: ErrNotANumber,
		},
		{
			name:     "empty is not digits",
			raw:      rawWeek("3", "4", "5", "2", "3", "", "5"),
			days:     []constants.Weekday{constants.Saturday},
			sentinel: ErrNotANumber,
		},
		{
			name:     "overflowing digits are out of range",
			raw:      rawWeek("3", "4", "5", "2", "3", "4", "99999999999999999999999"),
			days:     []constants.Weekday{constants.Sunday},
			sentinel: ErrOutOfRange,
		},
		{
			name:     "missing days are never accepted",
			raw:      rawWeek("3", "4"),
			days:     []constants.Weekday{constants.Wednesday, constants.Thursday, constants.Friday, constants.Saturday, constants.Sunday},
			sentinel: ErrMissing,
		},
		{
			name:     "empty form is never accepted",
			raw:      map[constants.Weekday]string{},
			days:     constants.Weekdays(),
			sentinel: ErrMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratings, err := Validate(tt.raw)
			require.Error(t, err)
			assert.Nil(t, ratings)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.days, validationErr.Days())
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestValidate_ReportsEveryBadDay(t *testing.T) {
	_, err := Validate(rawWeek("x", "4", "9", "2", "y", "4", "5"))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	problems := validationErr.Problems()
	require.Len(t, problems, 3)

	assert.Equal(t, constants.Monday, problems[0].Day)
	assert.ErrorIs(t, problems[0], ErrNotANumber)
	assert.Equal(t, constants.Wednesday, problems[1].Day)
	assert.ErrorIs(t, problems[1], ErrOutOfRange)
	assert.Equal(t, constants.Friday, problems[2].Day)

	assert.Contains(t, err.Error(), "invalid mood ratings")
	assert.Contains(t, err.Error(), "Monday")
	assert.Contains(t, err.Error(), "Wednesday")
	assert.Contains(t, err.Error(), "Friday")
}

func TestDayError_Message(t *testing.T) {
	notNumber := &DayError{Day: constants.Tuesday, Value: "abc", Err: ErrNotANumber}
	assert.Equal(t, "Please enter a valid integer mood rating for Tuesday", notNumber.Message())

	outOfRange := &DayError{Day: constants.Wednesday, Value: "7", Err: ErrOutOfRange}
	assert.Equal(t, "Mood rating for Wednesday must be between 1 and 5, got 7", outOfRange.Message())
}
