package app

import (
	"context"
	"log"
	"math"

	"edquiz-service/internal/domain"
	"edquiz-service/internal/gamification"
)

// SubjectMastery is one row of the dashboard's per-subject breakdown.
type SubjectMastery struct {
	Subject      domain.Subject `json:"subject"`
	QuizzesTaken int            `json:"quizzesTaken"`
	AverageScore int            `json:"averageScore"`
	Label        string         `json:"label"`
}

// Overview is everything the dashboard renders, derived entirely from the
// profile document and the result log; no new data model.
type Overview struct {
	Profile            domain.UserProfile     `json:"profile"`
	Level              gamification.LevelInfo `json:"level"`
	Mastery            []SubjectMastery       `json:"mastery"`
	RecentActivity     []domain.QuizResult    `json:"recentActivity"`
	Performance        []int                  `json:"performance"`
	AchievementsEarned int                    `json:"achievementsEarned"`
	AchievementsTotal  int                    `json:"achievementsTotal"`
	Rank               int                    `json:"rank,omitempty"`
}

// AchievementStatus pairs a catalog entry with the user's earned state.
type AchievementStatus struct {
	gamification.Achievement
	Earned     bool   `json:"earned"`
	UnlockedAt string `json:"unlockedAt,omitempty"`
}

const (
	recentActivityLimit  = 5
	performanceChartSize = 10
)

// DashboardService aggregates profile and history data for presentation.
type DashboardService struct {
	profiles    ProfileStore
	results     ResultStore
	leaderboard LeaderboardStore
}

func NewDashboardService(profiles ProfileStore, results ResultStore, leaderboard LeaderboardStore) *DashboardService {
	return &DashboardService{profiles: profiles, results: results, leaderboard: leaderboard}
}

// Overview builds the dashboard for a user. History and rank fetch
// failures degrade to empty views; only a missing profile is an error.
func (s *DashboardService) Overview(ctx context.Context, userID string) (Overview, error) {
	profile, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return Overview{}, err
	}

	ov := Overview{
		Profile:            profile,
		Level:              gamification.LevelFor(profile.Gamification.TotalPoints),
		Mastery:            masteryRows(profile.Stats),
		AchievementsEarned: len(profile.Achievements),
		AchievementsTotal:  gamification.CatalogSize(),
	}

	history, err := s.results.HistoryByUser(ctx, userID, performanceChartSize)
	if err != nil {
		log.Printf("load history for %s: %v", userID, err)
		history = nil
	}
	if len(history) > recentActivityLimit {
		ov.RecentActivity = history[:recentActivityLimit]
	} else {
		ov.RecentActivity = history
	}
	ov.Performance = performanceSeries(history)

	if s.leaderboard != nil {
		rank, err := s.leaderboard.RankOf(ctx, userID)
		if err != nil {
			log.Printf("rank for %s: %v", userID, err)
		} else {
			ov.Rank = rank
		}
	}
	return ov, nil
}

// History returns the user's newest-first result log, degrading to empty.
func (s *DashboardService) History(ctx context.Context, userID string, limit int) []domain.QuizResult {
	if limit <= 0 {
		limit = performanceChartSize
	}
	history, err := s.results.HistoryByUser(ctx, userID, limit)
	if err != nil {
		log.Printf("load history for %s: %v", userID, err)
		return nil
	}
	return history
}

// Leaderboard returns the top points holders.
func (s *DashboardService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.leaderboard.TopByPoints(ctx, limit)
}

// Achievements lists the catalog annotated with the user's earned state.
func (s *DashboardService) Achievements(ctx context.Context, userID string) ([]AchievementStatus, error) {
	profile, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	earned := make(map[string]string, len(profile.Achievements))
	for _, a := range profile.Achievements {
		earned[a.ID] = a.UnlockedAt.Format("2006-01-02")
	}

	catalog := gamification.Catalog()
	out := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		status := AchievementStatus{Achievement: a}
		if when, ok := earned[a.ID]; ok {
			status.Earned = true
			status.UnlockedAt = when
		}
		out = append(out, status)
	}
	return out, nil
}

// masteryRows derives the per-subject labels in fixed subject order.
func masteryRows(stats domain.Stats) []SubjectMastery {
	var rows []SubjectMastery
	for _, subject := range domain.Subjects() {
		s, ok := stats.SubjectStats[subject]
		if !ok {
			continue
		}
		avg := int(math.Round(s.AverageScore))
		rows = append(rows, SubjectMastery{
			Subject:      subject,
			QuizzesTaken: s.QuizzesTaken,
			AverageScore: avg,
			Label:        gamification.MasteryLabel(float64(avg)),
		})
	}
	return rows
}

// performanceSeries yields the chart points, oldest first.
func performanceSeries(history []domain.QuizResult) []int {
	scores := make([]int, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		scores = append(scores, history[i].Score)
	}
	return scores
}
