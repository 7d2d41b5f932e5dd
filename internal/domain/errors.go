package domain

import (
	"errors"
	"fmt"
)

// Common domain errors. The typed errors below unwrap to one of these, so
// callers can test with errors.Is and reach details with errors.As.
var (
	// ErrValidation is returned when an input record or value fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrDeckNotFound is returned when no deck matches the requested name.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrEmptyDeck is returned when a session is started on a deck with no cards.
	ErrEmptyDeck = errors.New("deck has no cards")

	// ErrInvalidTransition is returned when an action is not permitted in the
	// session's current phase.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrNoSession is returned when an action needs an active session and
	// none has been started.
	ErrNoSession = errors.New("no active session")
)

// ValidationError describes one rejected input row. Row is the 0-based index
// of the row in the ingested sequence, or -1 when the error is not tied to a row.
type ValidationError struct {
	Row    int
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Reason)
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// DeckNotFoundError is returned by deck lookups for unknown names.
type DeckNotFoundError struct {
	Name string
}

func (e *DeckNotFoundError) Error() string {
	return fmt.Sprintf("deck %q not found", e.Name)
}

// Unwrap returns ErrDeckNotFound.
func (e *DeckNotFoundError) Unwrap() error { return ErrDeckNotFound }

// EmptyDeckError is returned when a session is started on an empty deck.
type EmptyDeckError struct {
	Name string
}

func (e *EmptyDeckError) Error() string {
	return fmt.Sprintf("deck %q has no cards to study", e.Name)
}

// Unwrap returns ErrEmptyDeck.
func (e *EmptyDeckError) Unwrap() error { return ErrEmptyDeck }

// InvalidTransitionError reports an action attempted in a phase that does
// not allow it. Phase is empty when no session was active.
type InvalidTransitionError struct {
	Operation string
	Phase     Phase
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	if e.Phase == "" {
		return fmt.Sprintf("%s: %v", e.Operation, ErrNoSession)
	}
	return fmt.Sprintf("%s not allowed in phase %s", e.Operation, e.Phase)
}

// Unwrap returns ErrInvalidTransition, and ErrNoSession as well when no
// session was active.
func (e *InvalidTransitionError) Unwrap() []error {
	if e.Phase == "" {
		return []error{ErrInvalidTransition, ErrNoSession}
	}
	return []error{ErrInvalidTransition}
}
