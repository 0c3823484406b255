package gamification

import "edquiz-service/internal/domain"

// Achievement is one catalog entry: metadata plus the predicate that
// decides whether it unlocks. The predicate sees the user's cumulative
// stats and, when evaluated right after a quiz, that quiz's result; result
// is nil for batch re-checks on profile load, which makes completion-only
// achievements (perfect_score, speedster) skip quietly.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`

	Predicate func(stats domain.Stats, result *domain.QuizResult) bool `json:"-"`
}

// Catalog returns the fixed achievement list in evaluation order.
func Catalog() []Achievement {
	return catalog
}

// CatalogSize is the number of achievements a user can earn.
func CatalogSize() int {
	return len(catalog)
}

func subjectAverage(stats domain.Stats, subject domain.Subject, minQuizzes int, minAverage float64) bool {
	s, ok := stats.SubjectStats[subject]
	return ok && s.QuizzesTaken >= minQuizzes && s.AverageScore >= minAverage
}

var catalog = []Achievement{
	{
		ID:          "first_quiz",
		Name:        "Getting Started",
		Description: "Complete your first quiz",
		Icon:        "🚀",
		Points:      50,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return stats.TotalQuizzes >= 1
		},
	},
	{
		ID:          "perfect_score",
		Name:        "Perfect Score",
		Description: "Score 100% on any quiz",
		Icon:        "🎯",
		Points:      100,
		Predicate: func(_ domain.Stats, result *domain.QuizResult) bool {
			return result != nil && result.Score == 100
		},
	},
	{
		ID:          "streak_7",
		Name:        "7-Day Streak",
		Description: "Take quizzes for 7 consecutive days",
		Icon:        "🔥",
		Points:      200,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return stats.LongestStreak >= 7
		},
	},
	{
		ID:          "streak_30",
		Name:        "Monthly Master",
		Description: "Take quizzes for 30 consecutive days",
		Icon:        "👑",
		Points:      500,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return stats.LongestStreak >= 30
		},
	},
	{
		ID:          "speedster",
		Name:        "Speed Demon",
		Description: "Complete a quiz in under 2 minutes",
		Icon:        "⚡",
		Points:      75,
		Predicate: func(_ domain.Stats, result *domain.QuizResult) bool {
			return result != nil && result.TimeSpent < 120
		},
	},
	{
		ID:          "math_wiz",
		Name:        "Math Wizard",
		Description: "Score 90%+ on 5 math quizzes",
		Icon:        "🧮",
		Points:      150,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return subjectAverage(stats, domain.SubjectMathematics, 5, 90)
		},
	},
	{
		ID:          "science_explorer",
		Name:        "Science Explorer",
		Description: "Score 85%+ on 5 science quizzes",
		Icon:        "🔬",
		Points:      150,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return subjectAverage(stats, domain.SubjectScience, 5, 85)
		},
	},
	{
		ID:          "bookworm",
		Name:        "Bookworm",
		Description: "Score 85%+ on 5 English quizzes",
		Icon:        "📚",
		Points:      150,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return subjectAverage(stats, domain.SubjectEnglish, 5, 85)
		},
	},
	{
		ID:          "social_scientist",
		Name:        "Social Scientist",
		Description: "Score 85%+ on 5 social studies quizzes",
		Icon:        "🌍",
		Points:      150,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return subjectAverage(stats, domain.SubjectSocial, 5, 85)
		},
	},
	{
		ID:          "consistent",
		Name:        "Consistency Champion",
		Description: "Take 10 quizzes with average 80%+",
		Icon:        "📈",
		Points:      250,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return stats.TotalQuizzes >= 10 && stats.AverageScore >= 80
		},
	},
	{
		ID:          "overachiever",
		Name:        "Overachiever",
		Description: "Complete 50 quizzes",
		Icon:        "🌟",
		Points:      300,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return stats.TotalQuizzes >= 50
		},
	},
	{
		ID:          "master",
		Name:        "Quiz Master",
		Description: "Complete 100 quizzes with 85%+ average",
		Icon:        "👑",
		Points:      500,
		Predicate: func(stats domain.Stats, _ *domain.QuizResult) bool {
			return stats.TotalQuizzes >= 100 && stats.AverageScore >= 85
		},
	},
}
