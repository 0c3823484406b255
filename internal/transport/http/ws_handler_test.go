package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"edquiz-service/internal/app"
	"edquiz-service/internal/domain"
	"edquiz-service/internal/gamification"
	"edquiz-service/internal/identity"
	"edquiz-service/internal/infra/memory"
)

func newWSServer(t *testing.T) *httptest.Server {
	t.Helper()
	questions := memory.NewQuestionRepository(memory.NewStaticLoaderWith(testBank()), time.Minute)
	profiles := memory.NewProfileStore()
	engine := gamification.NewEngine(profiles, nil)
	service := app.NewQuizService(questions, memory.NewSessionStore(), memory.NewResultStore(), profiles, engine, nil)
	accounts := app.NewAccountService(identity.NewMemoryProvider(), profiles, engine, nil)

	wsHandler := NewWSHandler(service, accounts)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func readNext(t *testing.T, conn *websocket.Conn) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg.Type, msg.Payload
}

func TestWebSocketQuizFlow(t *testing.T) {
	server := newWSServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	start := map[string]any{
		"type": "start",
		"payload": map[string]any{
			"subject": string(domain.SubjectMathematics),
			"count":   2,
		},
	}
	if err := conn.WriteJSON(start); err != nil {
		t.Fatalf("write start: %v", err)
	}

	msgType, payload := readNext(t, conn)
	if msgType != "question" {
		t.Fatalf("expected question, got %s", msgType)
	}
	if payload["sessionId"] == "" || payload["total"].(float64) != 2 {
		t.Fatalf("unexpected session payload: %v", payload)
	}

	for i := 0; i < 2; i++ {
		answer := map[string]any{
			"type":    "answer",
			"payload": map[string]any{"option": 1},
		}
		if err := conn.WriteJSON(answer); err != nil {
			t.Fatalf("write answer: %v", err)
		}
		if msgType, _ = readNext(t, conn); msgType != "question" {
			t.Fatalf("expected question snapshot, got %s", msgType)
		}
		if err := conn.WriteJSON(map[string]any{"type": "next"}); err != nil {
			t.Fatalf("write next: %v", err)
		}
		if msgType, _ = readNext(t, conn); msgType != "question" {
			t.Fatalf("expected question snapshot, got %s", msgType)
		}
	}

	if err := conn.WriteJSON(map[string]any{"type": "finish"}); err != nil {
		t.Fatalf("write finish: %v", err)
	}
	msgType, payload = readNext(t, conn)
	if msgType != "completed" {
		t.Fatalf("expected completed, got %s %v", msgType, payload)
	}
	result := payload["result"].(map[string]any)
	if result["score"].(float64) != 100 {
		t.Fatalf("expected perfect score, got %v", result["score"])
	}
}

func TestWebSocketUnsupportedMessage(t *testing.T) {
	server := newWSServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"type": "dance"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msgType, payload := readNext(t, conn)
	if msgType != "error" {
		t.Fatalf("expected error, got %s", msgType)
	}
	if payload["message"] != "unsupported message type" {
		t.Fatalf("unexpected message: %v", payload)
	}
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	server := newWSServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws?token=bogus"
	if _, resp, err := websocket.DefaultDialer.Dial(u, nil); err == nil {
		t.Fatalf("expected dial failure")
	} else if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake, got %+v", resp)
	}
}
