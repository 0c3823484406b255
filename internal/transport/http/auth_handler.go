package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edquiz-service/internal/app"
	"edquiz-service/internal/domain"
	"edquiz-service/internal/identity"
)

type AuthHandler struct {
	accounts *app.AccountService
}

func NewAuthHandler(accounts *app.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var input app.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.accounts.SignUp(c.Request.Context(), input)
	if err != nil {
		c.JSON(accountStatus(err), gin.H{"error": accountMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, profile)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.accounts.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(accountStatus(err), gin.H{"error": accountMessage(err)})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing bearer token"})
		return
	}
	if err := h.accounts.SignOut(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.accounts.ResetPassword(c.Request.Context(), req.Email); err != nil {
		c.JSON(accountStatus(err), gin.H{"error": accountMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent."})
}

type settingsRequest struct {
	Name        string             `json:"name"`
	Grade       int                `json:"grade"`
	Board       string             `json:"board"`
	Preferences domain.Preferences `json:"preferences"`
}

func (h *AuthHandler) UpdateSettings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.accounts.UpdateSettings(c.Request.Context(), user.ID, req.Name, req.Grade, req.Board, req.Preferences)
	if err != nil {
		c.JSON(accountStatus(err), gin.H{"error": accountMessage(err)})
		return
	}
	c.Status(http.StatusNoContent)
}

// accountStatus maps account failures onto HTTP codes: validation and
// provider input errors are 4xx, everything else 500.
func accountStatus(err error) int {
	if app.IsValidationError(err) {
		return http.StatusBadRequest
	}
	var idErr *identity.Error
	if errors.As(err, &idErr) {
		switch idErr.Code {
		case identity.CodeEmailInUse:
			return http.StatusConflict
		case identity.CodeUserNotFound, identity.CodeWrongPassword, identity.CodeInvalidToken, identity.CodeUserDisabled:
			return http.StatusUnauthorized
		case identity.CodeTooManyRequests:
			return http.StatusTooManyRequests
		case identity.CodeWeakPassword, identity.CodeInvalidEmail, identity.CodeNotAllowed:
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, domain.ErrProfileNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// accountMessage prefers the fixed user-facing message table over raw
// error text.
func accountMessage(err error) string {
	var idErr *identity.Error
	if errors.As(err, &idErr) {
		return idErr.Message()
	}
	return err.Error()
}
