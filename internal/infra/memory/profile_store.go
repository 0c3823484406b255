package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"edquiz-service/internal/domain"
	"edquiz-service/internal/gamification"
)

// ProfileStore is an in-memory implementation of app.ProfileStore and
// app.LeaderboardStore. The mutex stands in for the document store's
// transaction primitive: every award and stats fold is one
// read-modify-write under the lock.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]domain.UserProfile
	clock    func() time.Time
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.UserProfile),
		clock:    time.Now,
	}
}

// WithClock injects the timestamp source for deterministic tests.
func (s *ProfileStore) WithClock(clock func() time.Time) *ProfileStore {
	s.clock = clock
	return s
}

func (s *ProfileStore) Profile(_ context.Context, userID string) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return domain.UserProfile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileStore) Save(_ context.Context, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile.LastUpdated = s.clock()
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *ProfileStore) UpdateStats(_ context.Context, userID string, result domain.QuizResult) (domain.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return domain.Stats{}, domain.ErrProfileNotFound
	}
	profile.Stats = profile.Stats.ApplyResult(result)
	profile.LastUpdated = s.clock()
	s.profiles[userID] = profile
	return profile.Stats, nil
}

func (s *ProfileStore) AwardAchievement(_ context.Context, userID, achievementID string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return time.Time{}, domain.ErrProfileNotFound
	}
	if profile.HasAchievement(achievementID) {
		return time.Time{}, domain.ErrAchievementEarned
	}
	now := s.clock()
	profile.Achievements = append(profile.Achievements, domain.EarnedAchievement{ID: achievementID, UnlockedAt: now})
	profile.LastUpdated = now
	s.profiles[userID] = profile
	return now, nil
}

func (s *ProfileStore) AwardPoints(_ context.Context, userID string, points int) (domain.Gamification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return domain.Gamification{}, domain.ErrProfileNotFound
	}
	now := s.clock()
	profile.Gamification.TotalPoints += points
	profile.Gamification.CurrentLevel = gamification.LevelFor(profile.Gamification.TotalPoints).Level
	profile.Gamification.LastPointsAwarded = points
	profile.Gamification.LastAwardDate = now
	profile.LastUpdated = now
	s.profiles[userID] = profile
	return profile.Gamification, nil
}

func (s *ProfileStore) TouchStreak(_ context.Context, userID string, today time.Time) (domain.StreakData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return domain.StreakData{}, domain.ErrProfileNotFound
	}
	profile.Streak = gamification.NextStreak(profile.Streak, today)
	profile.Stats.CurrentStreak = profile.Streak.CurrentStreak
	profile.Stats.LongestStreak = profile.Streak.LongestStreak
	profile.LastUpdated = s.clock()
	s.profiles[userID] = profile
	return profile.Streak, nil
}

func (s *ProfileStore) TopByPoints(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []domain.LeaderboardEntry
	for _, p := range s.profiles {
		if p.Gamification.TotalPoints <= 0 {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID: p.UserID,
			Name:   p.Name,
			Points: p.Gamification.TotalPoints,
			Level:  gamification.LevelFor(p.Gamification.TotalPoints).Level,
			Grade:  p.Grade,
			Board:  p.Board,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *ProfileStore) RankOf(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return 0, domain.ErrProfileNotFound
	}
	rank := 1
	for _, p := range s.profiles {
		if p.Gamification.TotalPoints > profile.Gamification.TotalPoints {
			rank++
		}
	}
	return rank, nil
}
