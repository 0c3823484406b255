package app

import (
	"context"
	"log"
	"math/rand"
	"time"

	"edquiz-service/internal/domain"
	"edquiz-service/internal/gamification"
)

// QuestionRepository serves the question pool for a subject (from the
// embedded bank, a cache, or a backing store).
type QuestionRepository interface {
	QuestionsFor(ctx context.Context, subject domain.Subject) ([]domain.Question, error)
}

// SessionStore keeps live quiz sessions, keyed by session id.
type SessionStore interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// ResultStore is the append-only quiz result log.
type ResultStore interface {
	Add(ctx context.Context, result domain.QuizResult) (string, error)
	HistoryByUser(ctx context.Context, userID string, limit int) ([]domain.QuizResult, error)
}

// ProfileStore is the full profile document surface: the engine's award
// operations plus creation, merge-save, stats folding, and streak touch.
// UpdateStats and TouchStreak are atomic read-modify-writes against the
// store's transaction primitive.
type ProfileStore interface {
	gamification.ProfileStore

	Save(ctx context.Context, profile domain.UserProfile) error
	UpdateStats(ctx context.Context, userID string, result domain.QuizResult) (domain.Stats, error)
	TouchStreak(ctx context.Context, userID string, today time.Time) (domain.StreakData, error)
}

// LeaderboardStore answers points-ordered queries across profiles.
type LeaderboardStore interface {
	TopByPoints(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	RankOf(ctx context.Context, userID string) (int, error)
}

// EventPublisher fans domain events out to interested consumers. Nil
// disables publishing.
type EventPublisher interface {
	Publish(eventType string, payload interface{}) error
}

// FinishOutcome is everything a client needs after a quiz ends: the scored
// result, any achievements unlocked, and the study hints.
type FinishOutcome struct {
	Result          domain.QuizResult     `json:"result"`
	Unlocks         []gamification.Unlock `json:"unlocks,omitempty"`
	WeakTopics      []string              `json:"weakTopics,omitempty"`
	Recommendations []string              `json:"recommendations"`
	Persisted       bool                  `json:"persisted"`
}

// QuizService contains the quiz-taking use cases.
type QuizService struct {
	questions QuestionRepository
	sessions  SessionStore
	results   ResultStore
	profiles  ProfileStore
	engine    *gamification.Engine
	events    EventPublisher

	timeLimit time.Duration
	clock     func() time.Time
	rnd       *rand.Rand
}

// QuizServiceOption tweaks construction; used by tests for determinism.
type QuizServiceOption func(*QuizService)

// WithClock injects the time source.
func WithClock(clock func() time.Time) QuizServiceOption {
	return func(s *QuizService) { s.clock = clock }
}

// WithRand injects the shuffle source.
func WithRand(rnd *rand.Rand) QuizServiceOption {
	return func(s *QuizService) { s.rnd = rnd }
}

// WithTimeLimit overrides the fixed countdown budget.
func WithTimeLimit(limit time.Duration) QuizServiceOption {
	return func(s *QuizService) { s.timeLimit = limit }
}

func NewQuizService(
	questions QuestionRepository,
	sessions SessionStore,
	results ResultStore,
	profiles ProfileStore,
	engine *gamification.Engine,
	events EventPublisher,
	opts ...QuizServiceOption,
) *QuizService {
	s := &QuizService{
		questions: questions,
		sessions:  sessions,
		results:   results,
		profiles:  profiles,
		engine:    engine,
		events:    events,
		timeLimit: DefaultTimeLimit,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start draws a new quiz session. userID may be empty for anonymous
// attempts; those never touch the profile or result stores. A subject with
// no questions aborts with domain.ErrNoQuestions before any state exists.
func (s *QuizService) Start(ctx context.Context, userID string, subject domain.Subject, difficulty domain.Difficulty, count int) (*Session, error) {
	pool, err := s.questions.QuestionsFor(ctx, subject)
	if err != nil {
		return nil, err
	}

	session, err := NewSession(SessionConfig{
		UserID:     userID,
		Subject:    subject,
		Difficulty: difficulty,
		Count:      count,
		TimeLimit:  s.timeLimit,
		Clock:      s.clock,
		Rand:       s.rnd,
	}, pool)
	if err != nil {
		return nil, err
	}

	s.sessions.Put(session)
	return session, nil
}

// Session looks up a live session by id.
func (s *QuizService) Session(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// SelectOption records an answer on the current question of a session.
func (s *QuizService) SelectOption(sessionID string, option int) (domain.Answer, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return domain.Answer{}, err
	}
	return session.SelectOption(option)
}

// Next advances a session's cursor.
func (s *QuizService) Next(sessionID string) (int, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return 0, err
	}
	return session.Next(), nil
}

// Prev rewinds a session's cursor.
func (s *QuizService) Prev(sessionID string) (int, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return 0, err
	}
	return session.Prev(), nil
}

// Finish completes a session and, for authenticated users, persists the
// result, folds it into cumulative stats, and runs the achievement pass.
// Persistence failures degrade to an unpersisted outcome rather than
// withholding the score from the user.
func (s *QuizService) Finish(ctx context.Context, sessionID string) (FinishOutcome, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return FinishOutcome{}, err
	}
	defer s.sessions.Delete(sessionID)

	result := session.Finish()
	weak := session.WeakTopics()
	outcome := FinishOutcome{
		Result:          result,
		WeakTopics:      weak,
		Recommendations: Recommendations(result, weak),
	}

	if session.UserID() == "" {
		return outcome, nil
	}

	id, err := s.results.Add(ctx, result)
	if err != nil {
		log.Printf("save quiz result for %s: %v", session.UserID(), err)
		return outcome, nil
	}
	outcome.Result.ID = id
	outcome.Persisted = true

	if _, err := s.profiles.UpdateStats(ctx, session.UserID(), result); err != nil {
		log.Printf("update stats for %s: %v", session.UserID(), err)
		return outcome, nil
	}

	unlocks, err := s.engine.Evaluate(ctx, session.UserID(), &outcome.Result)
	if err != nil {
		log.Printf("evaluate achievements for %s: %v", session.UserID(), err)
	}
	outcome.Unlocks = unlocks

	if s.events != nil {
		if err := s.events.Publish("quiz.completed", map[string]interface{}{
			"userId":  session.UserID(),
			"subject": result.Subject,
			"score":   result.Score,
		}); err != nil {
			log.Printf("publish quiz.completed: %v", err)
		}
	}
	return outcome, nil
}
