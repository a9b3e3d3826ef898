// Package constants provides shared constants for the mood check-in application
package constants

// Weekday names one day of a weekly check-in
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// weekOrder is the fixed order in which days are prompted, rendered and stored
var weekOrder = [...]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ValidDaysOfWeek is a map of valid day-of-week names
// Used for validating day keys coming from forms and stored rows
var ValidDaysOfWeek = map[Weekday]bool{
	Monday:    true,
	Tuesday:   true,
	Wednesday: true,
	Thursday:  true,
	Friday:    true,
	Saturday:  true,
	Sunday:    true,
}

// Weekdays returns the seven days in week order (Monday first).
// The returned slice is a copy and may be modified by the caller.
func Weekdays() []Weekday {
	days := make([]Weekday, len(weekOrder))
	copy(days, weekOrder[:])
	return days
}

// IsValidDayOfWeek checks if a given day string is a valid day of the week
func IsValidDayOfWeek(day string) bool {
	return ValidDaysOfWeek[Weekday(day)]
}

// Index returns the zero-based position of the day in the week, or -1 if unknown
func (d Weekday) Index() int {
	for i, day := range weekOrder {
		if day == d {
			return i
		}
	}
	return -1
}

// String returns the day name
func (d Weekday) String() string {
	return string(d)
}
