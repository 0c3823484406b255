package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"edquiz-service/internal/app"
	"edquiz-service/internal/domain"
	"edquiz-service/internal/gamification"
)

const leaderboardKey = "leaderboard:points"

// ProfileSource hydrates leaderboard rows with profile fields.
type ProfileSource interface {
	Profile(ctx context.Context, userID string) (domain.UserProfile, error)
}

// Leaderboard mirrors user point totals into a Redis sorted set so top-N
// and rank queries stay O(log n) regardless of the profile store.
type Leaderboard struct {
	client   *redis.Client
	profiles ProfileSource
}

func NewLeaderboard(client *redis.Client, profiles ProfileSource) *Leaderboard {
	return &Leaderboard{client: client, profiles: profiles}
}

// Update records a user's current point total. Called after every award.
func (l *Leaderboard) Update(ctx context.Context, userID string, points int) error {
	return l.client.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(points), Member: userID}).Err()
}

func (l *Leaderboard) TopByPoints(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	members, err := l.client.ZRevRangeByScoreWithScores(ctx, leaderboardKey, &redis.ZRangeBy{
		Min:   "(0",
		Max:   "+inf",
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard range: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		userID, ok := m.Member.(string)
		if !ok {
			continue
		}
		points := int(m.Score)
		entry := domain.LeaderboardEntry{
			Rank:   len(entries) + 1,
			UserID: userID,
			Points: points,
			Level:  gamification.LevelFor(points).Level,
		}
		if profile, err := l.profiles.Profile(ctx, userID); err == nil {
			entry.Name = profile.Name
			entry.Grade = profile.Grade
			entry.Board = profile.Board
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (l *Leaderboard) RankOf(ctx context.Context, userID string) (int, error) {
	score, err := l.client.ZScore(ctx, leaderboardKey, userID).Result()
	if err == redis.Nil {
		// Not on the board yet; rank below everyone with points.
		total, err := l.client.ZCount(ctx, leaderboardKey, "(0", "+inf").Result()
		if err != nil {
			return 0, fmt.Errorf("leaderboard count: %w", err)
		}
		return int(total) + 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("leaderboard score: %w", err)
	}
	above, err := l.client.ZCount(ctx, leaderboardKey, "("+strconv.FormatFloat(score, 'f', -1, 64), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("leaderboard count: %w", err)
	}
	return int(above) + 1, nil
}

// MirroredProfileStore decorates a profile store so every point award also
// lands in the sorted set.
type MirroredProfileStore struct {
	app.ProfileStore
	board *Leaderboard
}

func NewMirroredProfileStore(profiles app.ProfileStore, board *Leaderboard) *MirroredProfileStore {
	return &MirroredProfileStore{ProfileStore: profiles, board: board}
}

func (s *MirroredProfileStore) AwardPoints(ctx context.Context, userID string, points int) (domain.Gamification, error) {
	g, err := s.ProfileStore.AwardPoints(ctx, userID, points)
	if err != nil {
		return g, err
	}
	// best-effort mirror; the profile store stays the source of truth
	_ = s.board.Update(ctx, userID, g.TotalPoints)
	return g, nil
}
