package memory

import (
	"context"
	"testing"
	"time"

	"edquiz-service/internal/domain"
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
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context, subject domain.Subject) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx, subject)
}

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticLoaderWith(sampleBank())}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.QuestionsFor(context.Background(), domain.SubjectMathematics); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.QuestionsFor(context.Background(), domain.SubjectMathematics); err != nil {
		t.Fatalf("load 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionRepositoryExpires(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticLoaderWith(sampleBank())}
	repo := NewQuestionRepository(loader, time.Minute)

	current := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return current }

	if _, err := repo.QuestionsFor(context.Background(), domain.SubjectMathematics); err != nil {
		t.Fatalf("load: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := repo.QuestionsFor(context.Background(), domain.SubjectMathematics); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected refresh after expiry, loader calls %d", loader.calls)
	}
}

func TestStaticLoaderUnknownSubject(t *testing.T) {
	loader := NewStaticLoaderWith(sampleBank())
	if _, err := loader.LoadQuestions(context.Background(), domain.SubjectScience); err != domain.ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}
