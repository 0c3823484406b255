package identity

import "fmt"

// Provider error codes. The set mirrors what the identity backend can
// report; anything else passes through with its native message.
const (
	CodeEmailInUse       = "email-already-in-use"
	CodeWeakPassword     = "weak-password"
	CodeInvalidEmail     = "invalid-email"
	CodeUserNotFound     = "user-not-found"
	CodeWrongPassword    = "wrong-password"
	CodeTooManyRequests  = "too-many-requests"
	CodeNetworkFailure   = "network-request-failed"
	CodeUserDisabled     = "user-disabled"
	CodeNotAllowed       = "operation-not-allowed"
	CodeInvalidToken     = "invalid-token"
)

// messages is the fixed code-to-user-facing-message table.
var messages = map[string]string{
	CodeEmailInUse:      "Email already registered. Try signing in instead.",
	CodeWeakPassword:    "Password is too weak. Use at least 6 characters.",
	CodeInvalidEmail:    "Please enter a valid email address.",
	CodeUserNotFound:    "No account found with this email.",
	CodeWrongPassword:   "Incorrect password.",
	CodeTooManyRequests: "Too many failed attempts. Please try again later.",
	CodeNetworkFailure:  "Network error. Please check your connection.",
	CodeUserDisabled:    "This account has been disabled.",
	CodeNotAllowed:      "Operation not allowed. Please contact support.",
	CodeInvalidToken:    "Your session has expired. Please sign in again.",
}

// Error is a provider failure carrying its code. Message() yields the
// user-facing text; Error() is for logs.
type Error struct {
	Code   string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("identity: %s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("identity: %s", e.Code)
}

// Message returns the fixed human-readable message for the code, or the
// detail text when the code is unknown.
func (e *Error) Message() string {
	if msg, ok := messages[e.Code]; ok {
		return msg
	}
	if e.Detail != "" {
		return e.Detail
	}
	return "Something went wrong. Please try again."
}

// NewError builds a typed provider error.
func NewError(code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}
