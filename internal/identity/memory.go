package identity

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryProvider is an in-process Provider: bcrypt-hashed passwords, opaque
// session tokens, and in-memory auth-state fan-out. It backs tests, demos,
// and deployments that have no managed identity backend configured.
type MemoryProvider struct {
	mu          sync.RWMutex
	accounts    map[string]*account // keyed by lowercased email
	tokens      map[string]string   // token -> user id
	subscribers map[int]func(user *User)
	nextSub     int
}

type account struct {
	user User
	hash []byte
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		accounts:    make(map[string]*account),
		tokens:      make(map[string]string),
		subscribers: make(map[int]func(user *User)),
	}
}

func (p *MemoryProvider) CreateUser(_ context.Context, email, password, displayName string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return User{}, NewError(CodeInvalidEmail, email)
	}
	if len(password) < 6 {
		return User{}, NewError(CodeWeakPassword, "")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.accounts[email]; exists {
		return User{}, NewError(CodeEmailInUse, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	user := User{ID: uuid.NewString(), Email: email, DisplayName: displayName}
	p.accounts[email] = &account{user: user, hash: hash}
	return user, nil
}

func (p *MemoryProvider) SignIn(_ context.Context, email, password string) (AuthSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p.mu.Lock()
	defer p.mu.Unlock()
	acct, ok := p.accounts[email]
	if !ok {
		return AuthSession{}, NewError(CodeUserNotFound, email)
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return AuthSession{}, NewError(CodeWrongPassword, "")
	}

	token := uuid.NewString()
	p.tokens[token] = acct.user.ID
	p.notifyLocked(&acct.user)
	return AuthSession{Token: token, User: acct.user}, nil
}

func (p *MemoryProvider) SignOut(_ context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tokens, token)
	p.notifyLocked(nil)
	return nil
}

func (p *MemoryProvider) Verify(_ context.Context, token string) (User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	userID, ok := p.tokens[token]
	if !ok {
		return User{}, NewError(CodeInvalidToken, "")
	}
	for _, acct := range p.accounts {
		if acct.user.ID == userID {
			return acct.user, nil
		}
	}
	return User{}, NewError(CodeUserNotFound, "")
}

func (p *MemoryProvider) SendPasswordReset(_ context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.accounts[email]; !ok {
		return NewError(CodeUserNotFound, email)
	}
	// No mailer in-process; log so operators can see the request happened.
	log.Printf("password reset requested for %s", email)
	return nil
}

func (p *MemoryProvider) Subscribe(fn func(user *User)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.subscribers[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subscribers, id)
	}
}

func (p *MemoryProvider) notifyLocked(user *User) {
	for _, fn := range p.subscribers {
		fn(user)
	}
}
