package app

import (
	"fmt"
	"strings"

	"edquiz-service/internal/domain"
)

// Recommendations derives the post-quiz study hints: review basics under
// 70%, step up a difficulty after a strong run, and focus on weak topics.
func Recommendations(result domain.QuizResult, weakTopics []string) []string {
	var recs []string

	if result.Score < 70 {
		recs = append(recs,
			"Review the basic concepts in this subject",
			"Retake this quiz after studying")
	}
	if result.Score >= 80 && result.Difficulty == domain.DifficultyEasy {
		recs = append(recs, "Try the medium difficulty level")
	}
	if result.Score >= 85 && result.Difficulty == domain.DifficultyMedium {
		recs = append(recs, "Challenge yourself with hard difficulty")
	}
	if len(weakTopics) > 0 {
		recs = append(recs, fmt.Sprintf("Focus on: %s", strings.Join(weakTopics, ", ")))
	}
	return recs
}
