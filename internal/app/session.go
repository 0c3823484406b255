package app

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"edquiz-service/internal/domain"

	"github.com/google/uuid"
)

// State is the quiz session lifecycle: NotStarted -> InProgress -> Completed.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return "not_started"
	}
}

// DefaultTimeLimit is the fixed countdown budget for a quiz.
const DefaultTimeLimit = 300 * time.Second

// DefaultQuestionCount is the sample size drawn when the caller does not ask
// for a specific count.
const DefaultQuestionCount = 10

// Session drives one quiz attempt: the drawn question set, the cursor, the
// per-question answers, and the countdown deadline. UserID is empty for
// anonymous attempts, whose results are never persisted.
type Session struct {
	id         string
	userID     string
	subject    domain.Subject
	difficulty domain.Difficulty

	mu        sync.Mutex
	state     State
	questions []domain.Question
	index     int
	answers   []*domain.Answer
	startedAt time.Time
	deadline  time.Time
	result    *domain.QuizResult

	now func() time.Time
}

// SessionConfig carries the parameters of a new quiz attempt.
type SessionConfig struct {
	UserID     string
	Subject    domain.Subject
	Difficulty domain.Difficulty
	Count      int
	TimeLimit  time.Duration

	// Clock and Rand are injectable for deterministic tests; nil picks
	// time.Now and a time-seeded source.
	Clock func() time.Time
	Rand  *rand.Rand
}

// NewSession validates the pool, applies the difficulty filter (falling back
// to the unfiltered set when the filter leaves nothing — and "easy" means
// unfiltered), draws a Fisher–Yates sample of min(count, available), and
// starts the countdown. It fails with domain.ErrNoQuestions before any
// state is built when the pool is empty.
func NewSession(cfg SessionConfig, pool []domain.Question) (*Session, error) {
	if len(pool) == 0 {
		return nil, domain.ErrNoQuestions
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(now().UnixNano()))
	}
	count := cfg.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}
	limit := cfg.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	difficulty := cfg.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyEasy
	}

	filtered := pool
	if difficulty != domain.DifficultyEasy {
		filtered = make([]domain.Question, 0, len(pool))
		for _, q := range pool {
			if q.Difficulty == difficulty {
				filtered = append(filtered, q)
			}
		}
		if len(filtered) == 0 {
			filtered = pool
		}
	}

	drawn := sample(filtered, count, rnd)
	startedAt := now()

	return &Session{
		id:         uuid.NewString(),
		userID:     cfg.UserID,
		subject:    cfg.Subject,
		difficulty: difficulty,
		state:      StateInProgress,
		questions:  drawn,
		answers:    make([]*domain.Answer, len(drawn)),
		startedAt:  startedAt,
		deadline:   startedAt.Add(limit),
		now:        now,
	}, nil
}

// sample shuffles a copy of the pool and slices off the first n questions.
func sample(pool []domain.Question, n int, rnd *rand.Rand) []domain.Question {
	shuffled := make([]domain.Question, len(pool))
	copy(shuffled, pool)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func (s *Session) ID() string                    { return s.id }
func (s *Session) UserID() string                { return s.userID }
func (s *Session) Subject() domain.Subject       { return s.subject }
func (s *Session) Difficulty() domain.Difficulty { return s.difficulty }

// State reports the current lifecycle state, folding in deadline expiry.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	return s.state
}

// Len is the number of questions drawn for this attempt.
func (s *Session) Len() int { return len(s.questions) }

// Questions returns the drawn set in presentation order.
func (s *Session) Questions() []domain.Question {
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Current returns the question under the cursor and its index.
func (s *Session) Current() (domain.Question, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.index], s.index
}

// Remaining reports the time left on the countdown, floored at zero.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	left := s.deadline.Sub(s.now())
	if left < 0 {
		return 0
	}
	return left
}

// SelectOption records the answer for the current question, overwriting any
// earlier pick. Correctness is equality against the question's correct
// index. Selecting after completion (or after the deadline) fails with
// domain.ErrSessionCompleted.
func (s *Session) SelectOption(option int) (domain.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expireLocked(); s.state == StateCompleted {
		return domain.Answer{}, domain.ErrSessionCompleted
	}

	question := s.questions[s.index]
	if option < 0 || option >= len(question.Options) {
		return domain.Answer{}, domain.ErrOptionOutOfRange
	}

	answer := domain.Answer{
		QuestionID:     question.ID,
		SelectedOption: option,
		Correct:        option == question.Correct,
		Elapsed:        s.now().Sub(s.startedAt),
	}
	s.answers[s.index] = &answer
	return answer, nil
}

// Next advances the cursor, a no-op at the last question.
func (s *Session) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress && s.index < len(s.questions)-1 {
		s.index++
	}
	return s.index
}

// Prev moves the cursor back, a no-op at the first question.
func (s *Session) Prev() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress && s.index > 0 {
		s.index--
	}
	return s.index
}

// AnswerAt returns the recorded answer for a question index, if any.
func (s *Session) AnswerAt(index int) (domain.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.answers) || s.answers[index] == nil {
		return domain.Answer{}, false
	}
	return *s.answers[index], true
}

// Answered counts the questions with a recorded answer.
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.answers {
		if a != nil {
			n++
		}
	}
	return n
}

// Finish transitions to Completed and computes the result:
// score = round(100 × correct/total), clamped to [0,100]. Finishing an
// already-completed session returns the same result, so deadline expiry and
// an explicit finish cannot double-score.
func (s *Session) Finish() domain.QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishLocked()
}

// expireLocked completes the session when the deadline has passed.
func (s *Session) expireLocked() {
	if s.state == StateInProgress && s.now().After(s.deadline) {
		s.finishLocked()
	}
}

func (s *Session) finishLocked() domain.QuizResult {
	if s.result != nil {
		return *s.result
	}

	correct := 0
	answers := make([]domain.Answer, 0, len(s.answers))
	for _, a := range s.answers {
		if a == nil {
			continue
		}
		answers = append(answers, *a)
		if a.Correct {
			correct++
		}
	}

	total := len(s.questions)
	score := int(math.Round(100 * float64(correct) / float64(total)))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	finishedAt := s.now()
	elapsed := finishedAt.Sub(s.startedAt)
	if elapsed > s.deadline.Sub(s.startedAt) {
		elapsed = s.deadline.Sub(s.startedAt)
	}

	result := domain.QuizResult{
		UserID:         s.userID,
		Subject:        s.subject,
		Difficulty:     s.difficulty,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		TimeSpent:      int(elapsed.Seconds()),
		Answers:        answers,
		Timestamp:      finishedAt,
	}
	s.state = StateCompleted
	s.result = &result
	return result
}

// WeakTopics lists topics where the user got under 70% of the answered
// questions right, sorted for stable output.
func (s *Session) WeakTopics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	type tally struct{ correct, total int }
	byTopic := make(map[string]*tally)
	for i, a := range s.answers {
		if a == nil {
			continue
		}
		topic := s.questions[i].Topic
		t, ok := byTopic[topic]
		if !ok {
			t = &tally{}
			byTopic[topic] = t
		}
		t.total++
		if a.Correct {
			t.correct++
		}
	}

	var weak []string
	for topic, t := range byTopic {
		if float64(t.correct)/float64(t.total) < 0.7 {
			weak = append(weak, topic)
		}
	}
	sort.Strings(weak)
	return weak
}
