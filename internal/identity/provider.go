// Package identity wraps the external identity provider: account creation,
// email/password sign-in, password resets, and the auth-state subscription
// the rest of the application reacts to.
package identity

import "context"

// User is the provider's view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// AuthSession is an authenticated sign-in: the user plus an opaque token
// the transport layer presents on subsequent requests.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Provider is the identity backend. Implementations map their native
// failures onto *Error values so callers can surface the fixed
// user-facing message table.
type Provider interface {
	// CreateUser registers an email/password account with a display name.
	CreateUser(ctx context.Context, email, password, displayName string) (User, error)
	// SignIn authenticates and opens a session.
	SignIn(ctx context.Context, email, password string) (AuthSession, error)
	// SignOut invalidates a session token. Unknown tokens are a no-op.
	SignOut(ctx context.Context, token string) error
	// Verify resolves a session token to its user.
	Verify(ctx context.Context, token string) (User, error)
	// SendPasswordReset emails a reset link to the account.
	SendPasswordReset(ctx context.Context, email string) error
	// Subscribe registers a callback fired with the signed-in user, or nil
	// on sign-out. The returned function cancels the subscription.
	Subscribe(fn func(user *User)) (cancel func())
}
