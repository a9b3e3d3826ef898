// Package checkin implements the weekly mood check-in: validation of the raw form,
// aggregation of the ratings, persistence of the log record and the summary feedback.
package checkin

import (
	"fmt"
	"strings"
	"time"

	"github.com/belphemur/mood-checkin/internal/constants"
)

// Form is one raw submission as typed by the user
type Form struct {
	Name  string
	Moods map[constants.Weekday]string
}

// Ratings maps each day of the week to its mood rating.
// Rendering and iteration always follow week order, never map order.
type Ratings map[constants.Weekday]int

// String renders the ratings as {Monday: 3, Tuesday: 4, ...}
func (r Ratings) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, day := range constants.Weekdays() {
		value, ok := r[day]
		if !ok {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %d", day, value)
	}
	b.WriteByte('}')
	return b.String()
}

// Sum returns the total of all ratings
func (r Ratings) Sum() int {
	total := 0
	for _, value := range r {
		total += value
	}
	return total
}

// CheckIn is an accepted submission: a name and all seven ratings
type CheckIn struct {
	Name    string
	Ratings Ratings
}

// LogRecord returns the line appended to the daily journal, newline included
func (c CheckIn) LogRecord() string {
	return fmt.Sprintf("%s: Mood ratings - %s\n", c.Name, c.Ratings)
}

// Entry is what gets persisted for an accepted check-in
type Entry struct {
	CheckIn
	Average float64
	Message string
	At      time.Time
}

// Summary is what the user sees once a check-in has been saved
type Summary struct {
	Name    string
	Ratings Ratings
	Average float64
	Message string
}

// String renders the summary shown in the acknowledgement dialog
func (s Summary) String() string {
	return fmt.Sprintf("Check-in summary for %s:\n %s\n\nAverage Mood Rating: %.2f\n%s",
		s.Name, s.Ratings, s.Average, s.Message)
}
