package app

import (
	"context"
	"errors"
	"log"
	"time"

	"edquiz-service/internal/domain"
	"edquiz-service/internal/gamification"
	"edquiz-service/internal/identity"
)

// Validation failures are caught before any backend call; their text is
// shown to the user as-is.
var (
	ErrMissingFields    = errors.New("Please fill in all required fields")
	ErrTermsNotAccepted = errors.New("Please accept the Terms of Service")
	ErrPasswordTooShort = errors.New("Password is too weak. Use at least 6 characters.")
)

// IsValidationError reports whether err is a pre-flight input failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrTermsNotAccepted) ||
		errors.Is(err, ErrPasswordTooShort)
}

// SignUpInput is the onboarding form.
type SignUpInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Grade       int    `json:"grade"`
	Board       string `json:"board"`
	AcceptTerms bool   `json:"acceptTerms"`
}

// SignInResult is an opened session plus the user's profile document.
// Profile is nil when no document exists yet (the onboarding case).
type SignInResult struct {
	Session identity.AuthSession `json:"session"`
	Profile *domain.UserProfile  `json:"profile,omitempty"`
	Streak  domain.StreakData    `json:"streak"`
}

// AccountService handles sign-up, sign-in, and the per-sign-in side
// effects (streak touch, retroactive achievement pass).
type AccountService struct {
	provider identity.Provider
	profiles ProfileStore
	engine   *gamification.Engine
	events   EventPublisher
	clock    func() time.Time
}

func NewAccountService(provider identity.Provider, profiles ProfileStore, engine *gamification.Engine, events EventPublisher) *AccountService {
	return &AccountService{
		provider: provider,
		profiles: profiles,
		engine:   engine,
		events:   events,
		clock:    time.Now,
	}
}

// WithAccountClock injects the time source; tests use it for fixed days.
func (s *AccountService) WithAccountClock(clock func() time.Time) *AccountService {
	s.clock = clock
	return s
}

// SignUp validates the form, registers the account with the identity
// provider, and writes the initial profile document. Validation rejects
// before anything leaves the process.
func (s *AccountService) SignUp(ctx context.Context, input SignUpInput) (domain.UserProfile, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Grade == 0 || input.Board == "" {
		return domain.UserProfile{}, ErrMissingFields
	}
	if !input.AcceptTerms {
		return domain.UserProfile{}, ErrTermsNotAccepted
	}
	if len(input.Password) < 6 {
		return domain.UserProfile{}, ErrPasswordTooShort
	}

	user, err := s.provider.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return domain.UserProfile{}, err
	}

	profile := domain.NewUserProfile(user.ID, input.Name, user.Email, input.Grade, input.Board, s.clock())
	if err := s.profiles.Save(ctx, profile); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

// SignIn authenticates, advances the daily streak transactionally, runs a
// batch achievement pass over cumulative stats (catching retroactive
// unlocks the post-quiz pass could miss), and loads the profile. Fetch
// failures after authentication degrade rather than failing the sign-in.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	if email == "" || password == "" {
		return SignInResult{}, ErrMissingFields
	}

	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return SignInResult{}, err
	}
	result := SignInResult{Session: session}

	streak, err := s.profiles.TouchStreak(ctx, session.User.ID, s.clock())
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			log.Printf("touch streak for %s: %v", session.User.ID, err)
		}
		return result, nil
	}
	result.Streak = streak
	if s.events != nil {
		if err := s.events.Publish("streak.updated", map[string]interface{}{
			"userId":  session.User.ID,
			"current": streak.CurrentStreak,
			"longest": streak.LongestStreak,
		}); err != nil {
			log.Printf("publish streak.updated: %v", err)
		}
	}

	if _, err := s.engine.Evaluate(ctx, session.User.ID, nil); err != nil {
		log.Printf("batch achievement pass for %s: %v", session.User.ID, err)
	}

	profile, err := s.profiles.Profile(ctx, session.User.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			log.Printf("load profile for %s: %v", session.User.ID, err)
		}
		return result, nil
	}
	result.Profile = &profile
	return result, nil
}

// SignOut closes the session token.
func (s *AccountService) SignOut(ctx context.Context, token string) error {
	return s.provider.SignOut(ctx, token)
}

// ResetPassword asks the provider to email a reset link.
func (s *AccountService) ResetPassword(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingFields
	}
	return s.provider.SendPasswordReset(ctx, email)
}

// Verify resolves a session token to its user.
func (s *AccountService) Verify(ctx context.Context, token string) (identity.User, error) {
	return s.provider.Verify(ctx, token)
}

// UpdateSettings merges editable fields into the profile document.
func (s *AccountService) UpdateSettings(ctx context.Context, userID, name string, grade int, board string, prefs domain.Preferences) error {
	profile, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if name != "" {
		profile.Name = name
	}
	if grade != 0 {
		profile.Grade = grade
	}
	if board != "" {
		profile.Board = board
	}
	profile.Preferences = prefs
	profile.LastUpdated = s.clock()
	return s.profiles.Save(ctx, profile)
}
