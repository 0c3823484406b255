package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"edquiz-service/internal/app"
	"edquiz-service/internal/domain"
)

// WSHandler runs the interactive quiz flow over a websocket: the client
// drives with start/answer/next/prev/finish messages and receives session
// snapshots, a countdown on each state change, and the final outcome.
type WSHandler struct {
	quiz     *app.QuizService
	auth     Authenticator
	upgrader websocket.Upgrader
}

func NewWSHandler(quiz *app.QuizService, auth Authenticator) *WSHandler {
	return &WSHandler{
		quiz: quiz,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Subject    domain.Subject    `json:"subject"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Count      int               `json:"count"`
}

type answerPayload struct {
	Option *int `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs one quiz conversation per
// connection. An optional token query parameter attaches the session to an
// account; without it play is anonymous.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	var userID string
	if token := r.URL.Query().Get("token"); token != "" {
		user, err := h.auth.Verify(r.Context(), token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		userID = user.ID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan any, 16)
	writerDone := make(chan struct{})

	// Single writer goroutine so handler code never writes concurrently.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	var sessionID string
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid start payload"}}
				continue
			}
			session, err := h.quiz.Start(r.Context(), userID, payload.Subject, payload.Difficulty, payload.Count)
			if err != nil {
				send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			sessionID = session.ID()
			send <- outboundMessage[SessionView]{Type: "question", Payload: sessionView(session)}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			if payload.Option == nil {
				send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: domain.ErrNoAnswer.Error()}}
				continue
			}
			if _, err := h.quiz.SelectOption(sessionID, *payload.Option); err != nil {
				send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			h.sendSnapshot(send, sessionID)
		case "next":
			if _, err := h.quiz.Next(sessionID); err != nil {
				send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			h.sendSnapshot(send, sessionID)
		case "prev":
			if _, err := h.quiz.Prev(sessionID); err != nil {
				send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			h.sendSnapshot(send, sessionID)
		case "finish":
			session, err := h.quiz.Session(sessionID)
			if err != nil {
				send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			review := reviewItems(session)
			outcome, err := h.quiz.Finish(r.Context(), sessionID)
			if err != nil {
				send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[FinishView]{Type: "completed", Payload: FinishView{FinishOutcome: outcome, Review: review}}
		default:
			send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) sendSnapshot(send chan<- any, sessionID string) {
	session, err := h.quiz.Session(sessionID)
	if err != nil {
		send <- outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		return
	}
	send <- outboundMessage[SessionView]{Type: "question", Payload: sessionView(session)}
}
