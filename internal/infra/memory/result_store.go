package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"edquiz-service/internal/domain"
)

// ResultStore keeps quiz results in memory, newest first per user.
type ResultStore struct {
	mu      sync.Mutex
	results map[string][]domain.QuizResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string][]domain.QuizResult)}
}

func (s *ResultStore) Add(_ context.Context, result domain.QuizResult) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	s.results[result.UserID] = append([]domain.QuizResult{result}, s.results[result.UserID]...)
	return result.ID, nil
}

func (s *ResultStore) HistoryByUser(_ context.Context, userID string, limit int) ([]domain.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.results[userID]
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	out := make([]domain.QuizResult, len(history))
	copy(out, history)
	return out, nil
}
