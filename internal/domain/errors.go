package domain

import "errors"

var (
	// ErrNoQuestions is returned when a subject has no questions to draw from.
	ErrNoQuestions = errors.New("no questions for subject")
	// ErrUnknownSubject indicates a subject outside the fixed four categories.
	ErrUnknownSubject = errors.New("unknown subject")
	// ErrSessionNotFound is returned when a user has no active quiz session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionCompleted is returned for mutations after a session finished.
	ErrSessionCompleted = errors.New("quiz session already completed")
	// ErrNoAnswer indicates the current question has no recorded answer yet.
	ErrNoAnswer = errors.New("no answer recorded for question")
	// ErrOptionOutOfRange indicates a selected option index outside the question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")
	// ErrProfileNotFound is returned when no profile document exists for a user.
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrAchievementEarned indicates an award for an id already in the earned set.
	ErrAchievementEarned = errors.New("achievement already earned")
)
