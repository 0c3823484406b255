package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"edquiz-service/internal/app"
	"edquiz-service/internal/domain"
	"edquiz-service/internal/event"
	"edquiz-service/internal/gamification"
	"edquiz-service/internal/identity"
	"edquiz-service/internal/infra/memory"
)

func testBank() map[domain.Subject][]domain.Question {
	bank := make(map[domain.Subject][]domain.Question)
	for i := 1; i <= 4; i++ {
		bank[domain.SubjectMathematics] = append(bank[domain.SubjectMathematics], domain.Question{
			ID:          fmt.Sprintf("q%d", i),
			Prompt:      fmt.Sprintf("question %d", i),
			Options:     []string{"a", "b", "c"},
			Correct:     1,
			Explanation: "because",
			Difficulty:  domain.DifficultyEasy,
			Topic:       "arithmetic",
		})
	}
	return bank
}

func newTestRouter(t *testing.T) (*gin.Engine, *event.Recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	questions := memory.NewQuestionRepository(memory.NewStaticLoaderWith(testBank()), time.Minute)
	sessions := memory.NewSessionStore()
	profiles := memory.NewProfileStore()
	results := memory.NewResultStore()
	recorder := event.NewRecorder()
	engine := gamification.NewEngine(profiles, recorder)
	provider := identity.NewMemoryProvider()

	quizService := app.NewQuizService(questions, sessions, results, profiles, engine, recorder)
	accountService := app.NewAccountService(provider, profiles, engine, recorder)
	dashboardService := app.NewDashboardService(profiles, results, profiles)

	return NewRouter(accountService, quizService, dashboardService, nil), recorder
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func signUpAndIn(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", app.SignUpInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret123",
		Grade: 7, Board: "CBSE", AcceptTerms: true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "asha@example.com", "password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signin: %d %s", w.Code, w.Body.String())
	}
	result := decode[app.SignInResult](t, w)
	if result.Session.Token == "" {
		t.Fatalf("missing token in %s", w.Body.String())
	}
	return result.Session.Token
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz: %d", w.Code)
	}
}

func TestSignUpValidationError(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", app.SignUpInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret123",
		Grade: 7, Board: "CBSE", AcceptTerms: false,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", w.Code, w.Body.String())
	}
	resp := decode[map[string]string](t, w)
	if resp["error"] != "Please accept the Terms of Service" {
		t.Fatalf("unexpected error: %q", resp["error"])
	}
}

func TestQuizFlowEndToEnd(t *testing.T) {
	router, recorder := newTestRouter(t)
	token := signUpAndIn(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/quizzes", token, startRequest{
		Subject: domain.SubjectMathematics, Difficulty: domain.DifficultyEasy, Count: 3,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("start: %d %s", w.Code, w.Body.String())
	}
	view := decode[SessionView](t, w)
	if view.Total != 3 || view.State != "in_progress" {
		t.Fatalf("unexpected session view: %+v", view)
	}
	if view.Question.Prompt == "" {
		t.Fatalf("expected question in view")
	}

	base := "/api/quizzes/" + view.SessionID
	w = doJSON(t, router, http.MethodPost, base+"/answer", token, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing option, got %d", w.Code)
	}
	for i := 0; i < view.Total; i++ {
		w = doJSON(t, router, http.MethodPost, base+"/answer", token, map[string]int{"option": 1})
		if w.Code != http.StatusOK {
			t.Fatalf("answer %d: %d %s", i, w.Code, w.Body.String())
		}
		answered := decode[SessionView](t, w)
		if answered.Selected == nil || *answered.Selected != 1 {
			t.Fatalf("answer not reflected: %+v", answered)
		}
		w = doJSON(t, router, http.MethodPost, base+"/next", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("next %d: %d", i, w.Code)
		}
	}

	w = doJSON(t, router, http.MethodPost, base+"/finish", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("finish: %d %s", w.Code, w.Body.String())
	}
	finish := decode[FinishView](t, w)
	if finish.Result.Score != 100 || !finish.Persisted {
		t.Fatalf("unexpected outcome: %+v", finish.FinishOutcome)
	}
	if len(finish.Review) != 3 || finish.Review[0].Question.Explanation == "" {
		t.Fatalf("expected review with explanations: %+v", finish.Review)
	}

	// The finished session is gone.
	w = doJSON(t, router, http.MethodGet, base, token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after finish, got %d", w.Code)
	}

	// Dashboard reflects the run.
	w = doJSON(t, router, http.MethodGet, "/api/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", w.Code, w.Body.String())
	}
	overview := decode[app.Overview](t, w)
	if overview.Profile.Stats.TotalQuizzes != 1 {
		t.Fatalf("stats not folded: %+v", overview.Profile.Stats)
	}
	if overview.AchievementsEarned == 0 {
		t.Fatalf("expected unlocked achievements")
	}

	published := recorder.Types()
	var sawCompleted, sawUnlocked bool
	for _, typ := range published {
		switch typ {
		case "quiz.completed":
			sawCompleted = true
		case "achievement.unlocked":
			sawUnlocked = true
		}
	}
	if !sawCompleted || !sawUnlocked {
		t.Fatalf("expected quiz.completed and achievement.unlocked events, got %v", published)
	}
}

func TestAnonymousQuizAllowed(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/quizzes", "", startRequest{
		Subject: domain.SubjectMathematics, Count: 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("anonymous start: %d %s", w.Code, w.Body.String())
	}
}

func TestQuestionViewHidesAnswers(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/quizzes", "", startRequest{
		Subject: domain.SubjectMathematics, Count: 1,
	})
	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	question := raw["question"].(map[string]any)
	if _, leaked := question["correct"]; leaked {
		t.Fatalf("correct index leaked: %v", question)
	}
	if _, leaked := question["explanation"]; leaked {
		t.Fatalf("explanation leaked: %v", question)
	}
}

func TestDashboardRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/dashboard", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/dashboard", "bogus-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", w.Code)
	}
}

func TestUnknownSubjectStart(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/quizzes", "", startRequest{
		Subject: domain.Subject("history"),
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d %s", w.Code, w.Body.String())
	}
}

func TestLeaderboardIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/leaderboard", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard: %d %s", w.Code, w.Body.String())
	}
	entries := decode[[]domain.LeaderboardEntry](t, w)
	if entries == nil {
		t.Fatalf("expected empty array, got null")
	}
}
