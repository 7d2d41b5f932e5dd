package srs

import (
	"errors"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Common errors
var (
	ErrInvalidOutcome = errors.New("invalid review outcome")
	ErrInvalidClock   = errors.New("review clock cannot be negative")
)

// CardState is the per-card scheduling state kept by spaced repetition.
// DuePosition is measured on the session clock, which advances by one for
// every recorded outcome.
type CardState struct {
	EaseFactor    float64        `json:"ease_factor"`
	IntervalCount int            `json:"interval_count"`
	LastOutcome   domain.Outcome `json:"last_outcome,omitempty"`
	DuePosition   int            `json:"due_position"`
	Reviews       int            `json:"reviews"`
}

// Service defines the interface for SRS algorithm operations
type Service interface {
	// InitialState returns the state of a card that has never been reviewed.
	InitialState() CardState

	// CalculateNextReview computes the new state of a card after a review
	// recorded at the given session clock.
	CalculateNextReview(state CardState, outcome domain.Outcome, clock int) (CardState, error)

	// IsGraduated reports whether a card has been learned well enough to
	// leave the current session.
	IsGraduated(state CardState) bool
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

func (s *defaultService) InitialState() CardState {
	return CardState{EaseFactor: s.params.InitialEaseFactor}
}

// CalculateNextReview implements the Service interface for calculating updated state
func (s *defaultService) CalculateNextReview(
	state CardState,
	outcome domain.Outcome,
	clock int,
) (CardState, error) {
	if !outcome.IsValid() {
		return CardState{}, ErrInvalidOutcome
	}
	if clock < 0 {
		return CardState{}, ErrInvalidClock
	}

	return calculateNextState(state, outcome, clock, s.params), nil
}

func (s *defaultService) IsGraduated(state CardState) bool {
	return state.LastOutcome == domain.OutcomeCorrect &&
		state.IntervalCount >= s.params.GraduationInterval
}
