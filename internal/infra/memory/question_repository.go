package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"edquiz-service/internal/domain"
	"edquiz-service/internal/questionbank"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches a subject's question pool from a backing store.
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, subject domain.Subject) ([]domain.Question, error)
}

// StaticLoader serves the compiled-in question bank.
type StaticLoader struct {
	bank map[domain.Subject][]domain.Question
}

// NewStaticLoader uses the embedded catalog; NewStaticLoaderWith lets tests
// supply their own bank.
func NewStaticLoader() *StaticLoader {
	return &StaticLoader{bank: questionbank.All()}
}

func NewStaticLoaderWith(bank map[domain.Subject][]domain.Question) *StaticLoader {
	return &StaticLoader{bank: bank}
}

func (l *StaticLoader) LoadQuestions(_ context.Context, subject domain.Subject) ([]domain.Question, error) {
	questions, ok := l.bank[subject]
	if !ok || len(questions) == 0 {
		return nil, domain.ErrNoQuestions
	}
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out, nil
}

// QuestionRepository caches per-subject pools with TTL to avoid repeated
// backing-store hits.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[domain.Subject]cachedPool
}

type cachedPool struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.Subject]cachedPool),
	}
}

func (r *QuestionRepository) QuestionsFor(ctx context.Context, subject domain.Subject) ([]domain.Question, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[subject]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.questions, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(string(subject), func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[subject]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.questions, nil
		}
		r.mu.RUnlock()

		questions, err := r.loader.LoadQuestions(ctx, subject)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[subject] = cachedPool{
			questions: questions,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
