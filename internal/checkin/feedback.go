package checkin

import "github.com/belphemur/mood-checkin/internal/constants"

// Feedback messages tied to the weekly average
const (
	CautionaryMessage  = "Your mood indicates it's a challenging time for you. Reach out for support if needed."
	EncouragingMessage = "You're doing okay. Keep up the good work!"
	CelebratoryMessage = "Fantastic! Your mood suggests you're having a great week!"
)

// Aggregate returns the unweighted mean of the ratings, or 0 when there are none
func Aggregate(ratings Ratings) float64 {
	if len(ratings) == 0 {
		return 0
	}
	return float64(ratings.Sum()) / float64(len(ratings))
}

// Classify maps an average rating to its feedback message.
// Averages outside [MinRating, MaxRating] get no message.
func Classify(average float64) string {
	switch {
	case average >= constants.MinRating && average < 3:
		return CautionaryMessage
	case average >= 3 && average < constants.MaxRating:
		return EncouragingMessage
	case average == constants.MaxRating:
		return CelebratoryMessage
	default:
		return ""
	}
}
