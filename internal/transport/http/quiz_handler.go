package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edquiz-service/internal/app"
	"edquiz-service/internal/domain"
	"edquiz-service/internal/questionbank"
)

type QuizHandler struct {
	quiz *app.QuizService
}

func NewQuizHandler(quiz *app.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

// Subjects lists the playable categories with their metadata.
func (h *QuizHandler) Subjects(c *gin.Context) {
	c.JSON(http.StatusOK, questionbank.Subjects())
}

type startRequest struct {
	Subject    domain.Subject    `json:"subject"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Count      int               `json:"count"`
}

// Start opens a session. Signed-in users get persistence; anonymous play
// is allowed and stays ephemeral.
func (h *QuizHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var userID string
	if user, ok := currentUser(c); ok {
		userID = user.ID
	}
	session, err := h.quiz.Start(c.Request.Context(), userID, req.Subject, req.Difficulty, req.Count)
	if err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sessionView(session))
}

func (h *QuizHandler) Session(c *gin.Context) {
	session, err := h.quiz.Session(c.Param("id"))
	if err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

type answerRequest struct {
	Option *int `json:"option"`
}

// Answer records the picked option for the current question. Correctness
// is not revealed until finish.
func (h *QuizHandler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Option == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrNoAnswer.Error()})
		return
	}
	if _, err := h.quiz.SelectOption(c.Param("id"), *req.Option); err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	session, err := h.quiz.Session(c.Param("id"))
	if err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *QuizHandler) Next(c *gin.Context) {
	if _, err := h.quiz.Next(c.Param("id")); err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	session, err := h.quiz.Session(c.Param("id"))
	if err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *QuizHandler) Prev(c *gin.Context) {
	if _, err := h.quiz.Prev(c.Param("id")); err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	session, err := h.quiz.Session(c.Param("id"))
	if err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

// Finish scores the session and returns the outcome with the full review.
// The session is gone afterwards.
func (h *QuizHandler) Finish(c *gin.Context) {
	sessionID := c.Param("id")
	session, err := h.quiz.Session(sessionID)
	if err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	review := reviewItems(session)
	outcome, err := h.quiz.Finish(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, FinishView{FinishOutcome: outcome, Review: review})
}

func quizStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoQuestions), errors.Is(err, domain.ErrUnknownSubject):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionCompleted):
		return http.StatusConflict
	case errors.Is(err, domain.ErrOptionOutOfRange), errors.Is(err, domain.ErrNoAnswer):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
