package domain

import "time"

// Subject is one of the four fixed question categories.
type Subject string

const (
	SubjectMathematics Subject = "mathematics"
	SubjectScience     Subject = "science"
	SubjectEnglish     Subject = "english"
	SubjectSocial      Subject = "social"
)

// Subjects lists every category in display order.
func Subjects() []Subject {
	return []Subject{SubjectMathematics, SubjectScience, SubjectEnglish, SubjectSocial}
}

// Difficulty tags a question as easy, medium, or hard.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question models an MCQ question with exactly one correct option.
// The bank is immutable; questions are loaded once and never mutated.
type Question struct {
	ID          string     `json:"id"`
	Prompt      string     `json:"prompt"`
	Options     []string   `json:"options"`
	Correct     int        `json:"correct"`
	Explanation string     `json:"explanation"`
	Difficulty  Difficulty `json:"difficulty"`
	Topic       string     `json:"topic"`
}

// Answer records the option a user picked for one question.
type Answer struct {
	QuestionID     string        `json:"questionId" bson:"question_id"`
	SelectedOption int           `json:"selectedOption" bson:"selected_option"`
	Correct        bool          `json:"correct" bson:"correct"`
	Elapsed        time.Duration `json:"elapsed" bson:"elapsed"`
}

// QuizResult summarizes a completed session. Results are append-only;
// one document per finished quiz, keyed by the user.
type QuizResult struct {
	ID             string     `json:"id" bson:"_id,omitempty"`
	UserID         string     `json:"userId" bson:"user_id"`
	Subject        Subject    `json:"subject" bson:"subject"`
	Difficulty     Difficulty `json:"difficulty" bson:"difficulty"`
	Score          int        `json:"score" bson:"score"`
	CorrectAnswers int        `json:"correctAnswers" bson:"correct_answers"`
	TotalQuestions int        `json:"totalQuestions" bson:"total_questions"`
	TimeSpent      int        `json:"timeSpent" bson:"time_spent"` // seconds
	Answers        []Answer   `json:"answers" bson:"answers"`
	Timestamp      time.Time  `json:"timestamp" bson:"timestamp"`
}

// SubjectStats is the per-subject slice of a user's cumulative stats.
// AverageScore is always recomputed from TotalScore/QuizzesTaken.
type SubjectStats struct {
	QuizzesTaken int     `json:"quizzesTaken" bson:"quizzes_taken"`
	TotalScore   int     `json:"totalScore" bson:"total_score"`
	AverageScore float64 `json:"averageScore" bson:"average_score"`
}

// Stats holds a user's cumulative quiz statistics.
type Stats struct {
	TotalQuizzes   int                      `json:"totalQuizzes" bson:"total_quizzes"`
	TotalScore     int                      `json:"totalScore" bson:"total_score"`
	TotalTimeSpent int                      `json:"totalTimeSpent" bson:"total_time_spent"`
	AverageScore   float64                  `json:"averageScore" bson:"average_score"`
	CurrentStreak  int                      `json:"currentStreak" bson:"current_streak"`
	LongestStreak  int                      `json:"longestStreak" bson:"longest_streak"`
	SubjectStats   map[Subject]SubjectStats `json:"subjectStats" bson:"subject_stats"`
}

// Gamification is the points/level slice of a profile.
type Gamification struct {
	TotalPoints       int       `json:"totalPoints" bson:"total_points"`
	CurrentLevel      int       `json:"currentLevel" bson:"current_level"`
	LastPointsAwarded int       `json:"lastPointsAwarded" bson:"last_points_awarded"`
	LastAwardDate     time.Time `json:"lastAwardDate" bson:"last_award_date"`
}

// EarnedAchievement is a catalog id plus its unlock time. An id appears at
// most once per profile; stores must check before appending.
type EarnedAchievement struct {
	ID         string    `json:"id" bson:"id"`
	UnlockedAt time.Time `json:"unlockedAt" bson:"unlocked_at"`
}

// StreakData tracks consecutive-day activity. LastActiveDate is always
// date-truncated.
type StreakData struct {
	CurrentStreak  int        `json:"currentStreak" bson:"current_streak"`
	LongestStreak  int        `json:"longestStreak" bson:"longest_streak"`
	LastActiveDate *time.Time `json:"lastActiveDate,omitempty" bson:"last_active_date,omitempty"`
}

// Preferences holds user-editable settings.
type Preferences struct {
	Notifications bool `json:"notifications" bson:"notifications"`
	EmailUpdates  bool `json:"emailUpdates" bson:"email_updates"`
}

// UserProfile is the per-user document: identity, cumulative stats,
// gamification state, earned achievements, and streak data.
type UserProfile struct {
	UserID       string              `json:"userId" bson:"_id"`
	Name         string              `json:"name" bson:"name"`
	Email        string              `json:"email" bson:"email"`
	Grade        int                 `json:"grade" bson:"grade"`
	Board        string              `json:"board" bson:"board"`
	Preferences  Preferences         `json:"preferences" bson:"preferences"`
	Stats        Stats               `json:"stats" bson:"stats"`
	Gamification Gamification        `json:"gamification" bson:"gamification"`
	Achievements []EarnedAchievement `json:"achievements" bson:"achievements"`
	Streak       StreakData          `json:"streak" bson:"streak"`
	CreatedAt    time.Time           `json:"createdAt" bson:"created_at"`
	LastUpdated  time.Time           `json:"lastUpdated" bson:"last_updated"`
}

// NewUserProfile builds the document written at sign-up: zeroed stats,
// level 1, no achievements.
func NewUserProfile(userID, name, email string, grade int, board string, now time.Time) UserProfile {
	return UserProfile{
		UserID: userID,
		Name:   name,
		Email:  email,
		Grade:  grade,
		Board:  board,
		Preferences: Preferences{
			Notifications: true,
			EmailUpdates:  true,
		},
		Stats:        Stats{SubjectStats: make(map[Subject]SubjectStats)},
		Gamification: Gamification{CurrentLevel: 1},
		Achievements: []EarnedAchievement{},
		CreatedAt:    now,
		LastUpdated:  now,
	}
}

// HasAchievement reports whether the profile already earned the given id.
func (p *UserProfile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Level  int    `json:"level"`
	Grade  int    `json:"grade"`
	Board  string `json:"board"`
}
