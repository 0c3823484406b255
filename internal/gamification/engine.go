package gamification

import (
	"context"
	"errors"
	"log"
	"time"

	"edquiz-service/internal/domain"
)

// ProfileStore is the slice of profile persistence the engine needs. Both
// award methods must be atomic read-modify-writes so concurrent awards
// against the same profile cannot lose updates; the store's transaction
// primitive carries that guarantee, not the engine.
type ProfileStore interface {
	Profile(ctx context.Context, userID string) (domain.UserProfile, error)
	// AwardAchievement appends the achievement id with a store-assigned
	// timestamp. It returns domain.ErrAchievementEarned when the id is
	// already in the earned set.
	AwardAchievement(ctx context.Context, userID, achievementID string) (time.Time, error)
	// AwardPoints adds points to the cumulative total, recomputes the
	// level, and returns the resulting gamification state.
	AwardPoints(ctx context.Context, userID string, points int) (domain.Gamification, error)
}

// Events receives unlock and level-up notifications. A nil publisher
// disables them.
type Events interface {
	Publish(eventType string, payload interface{}) error
}

// Unlock reports one achievement awarded during an evaluation pass.
type Unlock struct {
	Achievement Achievement `json:"achievement"`
	UnlockedAt  time.Time   `json:"unlockedAt"`
	TotalPoints int         `json:"totalPoints"`
	Level       LevelInfo   `json:"level"`
	LeveledUp   bool        `json:"leveledUp"`
}

// Engine evaluates the achievement catalog against a user's stats.
type Engine struct {
	profiles ProfileStore
	events   Events
}

func NewEngine(profiles ProfileStore, events Events) *Engine {
	return &Engine{profiles: profiles, events: events}
}

// Evaluate runs every unearned predicate and awards the ones that pass.
// result carries the just-completed quiz for the post-quiz incremental
// pass; pass nil for the batch pass on profile load, where completion-only
// predicates simply stay locked. Evaluating twice with unchanged stats
// awards nothing the second time.
func (e *Engine) Evaluate(ctx context.Context, userID string, result *domain.QuizResult) ([]Unlock, error) {
	profile, err := e.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var unlocks []Unlock
	for _, achievement := range catalog {
		if profile.HasAchievement(achievement.ID) {
			continue
		}
		if !achievement.Predicate(profile.Stats, result) {
			continue
		}

		unlockedAt, err := e.profiles.AwardAchievement(ctx, userID, achievement.ID)
		if errors.Is(err, domain.ErrAchievementEarned) {
			continue
		}
		if err != nil {
			return unlocks, err
		}

		state, err := e.profiles.AwardPoints(ctx, userID, achievement.Points)
		if err != nil {
			return unlocks, err
		}

		before := LevelFor(state.TotalPoints - achievement.Points)
		after := LevelFor(state.TotalPoints)
		unlock := Unlock{
			Achievement: achievement,
			UnlockedAt:  unlockedAt,
			TotalPoints: state.TotalPoints,
			Level:       after,
			LeveledUp:   after.Level > before.Level,
		}
		unlocks = append(unlocks, unlock)
		e.notify(userID, unlock)
	}
	return unlocks, nil
}

func (e *Engine) notify(userID string, unlock Unlock) {
	if e.events == nil {
		return
	}
	if err := e.events.Publish("achievement.unlocked", map[string]interface{}{
		"userId":      userID,
		"achievement": unlock.Achievement.ID,
		"points":      unlock.Achievement.Points,
		"totalPoints": unlock.TotalPoints,
	}); err != nil {
		log.Printf("publish achievement.unlocked: %v", err)
	}
	if unlock.LeveledUp {
		if err := e.events.Publish("level.up", map[string]interface{}{
			"userId": userID,
			"level":  unlock.Level.Level,
			"name":   unlock.Level.Name,
		}); err != nil {
			log.Printf("publish level.up: %v", err)
		}
	}
}
