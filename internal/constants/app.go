// Package constants provides shared constants for the mood check-in application
package constants

// AppTitle is the heading shown above the check-in form
const AppTitle = "Weekly Wellness Check-in"

// MinRating and MaxRating bound a valid mood rating (inclusive)
const (
	MinRating = 1
	MaxRating = 5
)
