package gamification

// MasteryLabel maps a subject's average score onto the fixed qualitative
// ladder used by the dashboard.
func MasteryLabel(averageScore float64) string {
	switch {
	case averageScore >= 90:
		return "Expert"
	case averageScore >= 80:
		return "Advanced"
	case averageScore >= 70:
		return "Intermediate"
	case averageScore >= 60:
		return "Novice"
	default:
		return "Beginner"
	}
}
