package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"edquiz-service/internal/domain"
	"edquiz-service/internal/infra/memory"
)

func sampleBank() map[domain.Subject][]domain.Question {
	return map[domain.Subject][]domain.Question{
		domain.SubjectMathematics: {
			{ID: "q1", Prompt: "What is 2 + 2?", Options: []string{"3", "4", "5"}, Correct: 1, Difficulty: domain.DifficultyEasy, Topic: "arithmetic"},
			{ID: "q2", Prompt: "What is 3 x 3?", Options: []string{"6", "9", "12"}, Correct: 1, Difficulty: domain.DifficultyEasy, Topic: "arithmetic"},
		},
	}
}

type countingLoader struct {
	memory.QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context, subject domain.Subject) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx, subject)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{QuestionLoader: memory.NewStaticLoaderWith(sampleBank())}
	repo := NewQuestionRepository(client, loader, time.Minute)

	questions, err := repo.QuestionsFor(context.Background(), domain.SubjectMathematics)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}

	// Second call should hit the redis cache, loader not incremented.
	cached, err := repo.QuestionsFor(context.Background(), domain.SubjectMathematics)
	if err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached[0].Correct != 1 || cached[0].Explanation != questions[0].Explanation {
		t.Fatalf("cache round-trip lost fields: %+v", cached[0])
	}
}

func TestQuestionRepositoryMissingSubject(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewQuestionRepository(newClient(mr), memory.NewStaticLoaderWith(sampleBank()), time.Minute)
	if _, err := repo.QuestionsFor(context.Background(), domain.SubjectScience); err != domain.ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}
