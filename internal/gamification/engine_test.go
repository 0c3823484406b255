package gamification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edquiz-service/internal/domain"
)

type fakeProfileStore struct {
	profile domain.UserProfile
}

func (s *fakeProfileStore) Profile(_ context.Context, _ string) (domain.UserProfile, error) {
	return s.profile, nil
}

func (s *fakeProfileStore) AwardAchievement(_ context.Context, _, id string) (time.Time, error) {
	if s.profile.HasAchievement(id) {
		return time.Time{}, domain.ErrAchievementEarned
	}
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	s.profile.Achievements = append(s.profile.Achievements, domain.EarnedAchievement{ID: id, UnlockedAt: now})
	return now, nil
}

func (s *fakeProfileStore) AwardPoints(_ context.Context, _ string, points int) (domain.Gamification, error) {
	s.profile.Gamification.TotalPoints += points
	s.profile.Gamification.CurrentLevel = LevelFor(s.profile.Gamification.TotalPoints).Level
	return s.profile.Gamification, nil
}

func newProfileWith(stats domain.Stats) *fakeProfileStore {
	return &fakeProfileStore{
		profile: domain.UserProfile{
			UserID: "u1",
			Stats:  stats,
		},
	}
}

func TestEvaluateFirstQuizUnlocks(t *testing.T) {
	store := newProfileWith(domain.Stats{TotalQuizzes: 1, TotalScore: 60, AverageScore: 60})
	engine := NewEngine(store, nil)

	result := &domain.QuizResult{Score: 60, TimeSpent: 200}
	unlocks, err := engine.Evaluate(context.Background(), "u1", result)
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "first_quiz", unlocks[0].Achievement.ID)
	assert.Equal(t, 50, unlocks[0].TotalPoints)
	assert.False(t, unlocks[0].LeveledUp)
}

func TestEvaluatePerfectFastQuiz(t *testing.T) {
	store := newProfileWith(domain.Stats{TotalQuizzes: 1, TotalScore: 100, AverageScore: 100})
	engine := NewEngine(store, nil)

	result := &domain.QuizResult{Score: 100, TimeSpent: 90}
	unlocks, err := engine.Evaluate(context.Background(), "u1", result)
	require.NoError(t, err)

	ids := make([]string, len(unlocks))
	for i, u := range unlocks {
		ids[i] = u.Achievement.ID
	}
	assert.Equal(t, []string{"first_quiz", "perfect_score", "speedster"}, ids)
	// 50 + 100 + 75 = 225 points crosses the Student boundary.
	last := unlocks[len(unlocks)-1]
	assert.Equal(t, 225, last.TotalPoints)
	assert.Equal(t, 2, last.Level.Level)
	assert.True(t, last.LeveledUp)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	store := newProfileWith(domain.Stats{TotalQuizzes: 1, TotalScore: 60, AverageScore: 60})
	engine := NewEngine(store, nil)

	result := &domain.QuizResult{Score: 60, TimeSpent: 200}
	first, err := engine.Evaluate(context.Background(), "u1", result)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := engine.Evaluate(context.Background(), "u1", result)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestEvaluateBatchSkipsCompletionOnly(t *testing.T) {
	// A batch pass (nil result) over strong cumulative stats unlocks the
	// stats-based achievements but never perfect_score or speedster.
	store := newProfileWith(domain.Stats{
		TotalQuizzes:  10,
		TotalScore:    900,
		AverageScore:  90,
		LongestStreak: 7,
	})
	engine := NewEngine(store, nil)

	unlocks, err := engine.Evaluate(context.Background(), "u1", nil)
	require.NoError(t, err)

	ids := make([]string, len(unlocks))
	for i, u := range unlocks {
		ids[i] = u.Achievement.ID
	}
	assert.Equal(t, []string{"first_quiz", "streak_7", "consistent"}, ids)
}

func TestEvaluateSubjectAchievement(t *testing.T) {
	store := newProfileWith(domain.Stats{
		TotalQuizzes: 5,
		TotalScore:   460,
		AverageScore: 92,
		SubjectStats: map[domain.Subject]domain.SubjectStats{
			domain.SubjectMathematics: {QuizzesTaken: 5, TotalScore: 460, AverageScore: 92},
		},
	})
	engine := NewEngine(store, nil)

	unlocks, err := engine.Evaluate(context.Background(), "u1", nil)
	require.NoError(t, err)

	var found bool
	for _, u := range unlocks {
		if u.Achievement.ID == "math_wiz" {
			found = true
		}
	}
	assert.True(t, found, "expected math_wiz unlock, got %+v", unlocks)
}

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Catalog() {
		assert.False(t, seen[a.ID], "duplicate achievement id %s", a.ID)
		seen[a.ID] = true
		assert.NotNil(t, a.Predicate, "achievement %s has no predicate", a.ID)
		assert.Greater(t, a.Points, 0)
	}
	assert.Equal(t, CatalogSize(), len(seen))
}
