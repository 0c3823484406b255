package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edquiz-service/internal/domain"
	"edquiz-service/internal/gamification"
)

// ProfileStore keeps one document per user in the profiles collection,
// keyed by the auth user id. Read-modify-write operations run inside a
// session transaction so concurrent quiz finishes fold stats correctly.
type ProfileStore struct {
	client *mongo.Client
	col    *mongo.Collection
	clock  func() time.Time
}

func NewProfileStore(client *mongo.Client, db *mongo.Database) *ProfileStore {
	return &ProfileStore{
		client: client,
		col:    db.Collection("profiles"),
		clock:  time.Now,
	}
}

func (s *ProfileStore) Profile(ctx context.Context, userID string) (domain.UserProfile, error) {
	var profile domain.UserProfile
	err := s.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.UserProfile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

func (s *ProfileStore) Save(ctx context.Context, profile domain.UserProfile) error {
	profile.LastUpdated = s.clock()
	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": profile.UserID}, profile, opts)
	return err
}

func (s *ProfileStore) UpdateStats(ctx context.Context, userID string, result domain.QuizResult) (domain.Stats, error) {
	var stats domain.Stats
	err := s.inTransaction(ctx, func(sc mongo.SessionContext) error {
		profile, err := s.Profile(sc, userID)
		if err != nil {
			return err
		}
		stats = profile.Stats.ApplyResult(result)
		_, err = s.col.UpdateOne(sc, bson.M{"_id": userID}, bson.M{"$set": bson.M{
			"stats":        stats,
			"last_updated": s.clock(),
		}})
		return err
	})
	if err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

// AwardAchievement is a single guarded update: the filter excludes profiles
// that already hold the id, so duplicates lose the race at the database.
func (s *ProfileStore) AwardAchievement(ctx context.Context, userID, achievementID string) (time.Time, error) {
	now := s.clock()
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID, "achievements.id": bson.M{"$ne": achievementID}},
		bson.M{
			"$push": bson.M{"achievements": domain.EarnedAchievement{ID: achievementID, UnlockedAt: now}},
			"$set":  bson.M{"last_updated": now},
		},
	)
	if err != nil {
		return time.Time{}, err
	}
	if res.MatchedCount == 0 {
		count, err := s.col.CountDocuments(ctx, bson.M{"_id": userID})
		if err != nil {
			return time.Time{}, err
		}
		if count == 0 {
			return time.Time{}, domain.ErrProfileNotFound
		}
		return time.Time{}, domain.ErrAchievementEarned
	}
	return now, nil
}

func (s *ProfileStore) AwardPoints(ctx context.Context, userID string, points int) (domain.Gamification, error) {
	var g domain.Gamification
	err := s.inTransaction(ctx, func(sc mongo.SessionContext) error {
		profile, err := s.Profile(sc, userID)
		if err != nil {
			return err
		}
		now := s.clock()
		g = profile.Gamification
		g.TotalPoints += points
		g.CurrentLevel = gamification.LevelFor(g.TotalPoints).Level
		g.LastPointsAwarded = points
		g.LastAwardDate = now
		_, err = s.col.UpdateOne(sc, bson.M{"_id": userID}, bson.M{"$set": bson.M{
			"gamification": g,
			"last_updated": now,
		}})
		return err
	})
	if err != nil {
		return domain.Gamification{}, err
	}
	return g, nil
}

func (s *ProfileStore) TouchStreak(ctx context.Context, userID string, today time.Time) (domain.StreakData, error) {
	var streak domain.StreakData
	err := s.inTransaction(ctx, func(sc mongo.SessionContext) error {
		profile, err := s.Profile(sc, userID)
		if err != nil {
			return err
		}
		streak = gamification.NextStreak(profile.Streak, today)
		_, err = s.col.UpdateOne(sc, bson.M{"_id": userID}, bson.M{"$set": bson.M{
			"streak":               streak,
			"stats.current_streak": streak.CurrentStreak,
			"stats.longest_streak": streak.LongestStreak,
			"last_updated":         s.clock(),
		}})
		return err
	})
	if err != nil {
		return domain.StreakData{}, err
	}
	return streak, nil
}

func (s *ProfileStore) inTransaction(ctx context.Context, fn func(mongo.SessionContext) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *ProfileStore) TopByPoints(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "gamification.total_points", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.col.Find(ctx, bson.M{"gamification.total_points": bson.M{"$gt": 0}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []domain.LeaderboardEntry
	for cur.Next(ctx) {
		var profile domain.UserProfile
		if err := cur.Decode(&profile); err != nil {
			return nil, err
		}
		entries = append(entries, domain.LeaderboardEntry{
			Rank:   len(entries) + 1,
			UserID: profile.UserID,
			Name:   profile.Name,
			Points: profile.Gamification.TotalPoints,
			Level:  gamification.LevelFor(profile.Gamification.TotalPoints).Level,
			Grade:  profile.Grade,
			Board:  profile.Board,
		})
	}
	return entries, cur.Err()
}

func (s *ProfileStore) RankOf(ctx context.Context, userID string) (int, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return 0, err
	}
	above, err := s.col.CountDocuments(ctx, bson.M{
		"gamification.total_points": bson.M{"$gt": profile.Gamification.TotalPoints},
	})
	if err != nil {
		return 0, err
	}
	return int(above) + 1, nil
}
