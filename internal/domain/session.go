package domain

import (
	"time"

	"github.com/google/uuid"
)

// Phase is a step of the study state machine.
type Phase string

// Possible phase values
const (
	PhaseQuestionShown   Phase = "question_shown"
	PhaseAnswerRevealed  Phase = "answer_revealed"
	PhaseSessionComplete Phase = "session_complete"
)

// SessionState is the mutable state of one study session over one deck.
// Revealed is false exactly when Phase is PhaseQuestionShown.
type SessionState struct {
	SessionID     uuid.UUID   `json:"session_id"`
	DeckName      string      `json:"deck_name"`
	Policy        string      `json:"policy"`
	CursorHistory []uuid.UUID `json:"cursor_history"`
	CurrentCardID uuid.UUID   `json:"current_card_id"` // uuid.Nil once complete
	Revealed      bool        `json:"revealed"`
	Phase         Phase       `json:"phase"`
	StartedAt     time.Time   `json:"started_at"`
}

// Clone returns a deep copy of the state.
func (s SessionState) Clone() SessionState {
	c := s
	c.CursorHistory = make([]uuid.UUID, len(s.CursorHistory))
	copy(c.CursorHistory, s.CursorHistory)
	return c
}

// Progress reports how far through the deck a session has come.
type Progress struct {
	Seen     int     `json:"seen"`     // distinct cards presented so far
	Total    int     `json:"total"`    // cards in the deck
	Percent  float64 `json:"percent"`  // Seen / Total * 100
	Position int     `json:"position"` // 1-based viewing position
}

// Summary describes a finished session.
type Summary struct {
	SessionID  uuid.UUID     `json:"session_id"`
	DeckName   string        `json:"deck_name"`
	Policy     string        `json:"policy"`
	TotalCards int           `json:"total_cards"`
	Stats      Stats         `json:"stats"`
	Completed  bool          `json:"completed"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    time.Time     `json:"ended_at"`
	Duration   time.Duration `json:"duration"`
}
