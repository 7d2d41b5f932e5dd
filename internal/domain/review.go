package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Outcome is the user's verdict on a revealed card.
type Outcome string

// Possible outcome values
const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// IsValid reports whether o is one of the defined outcomes.
func (o Outcome) IsValid() bool {
	return o == OutcomeCorrect || o == OutcomeIncorrect
}

// ParseOutcome converts user input into an Outcome. Matching is
// case-insensitive and accepts the single-letter forms "c" and "i".
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct", "c":
		return OutcomeCorrect, nil
	case "incorrect", "i":
		return OutcomeIncorrect, nil
	}
	return "", &ValidationError{Row: -1, Field: "outcome", Reason: fmt.Sprintf("unknown outcome %q", s)}
}

// ReviewRecord is the immutable log entry of one outcome submission.
type ReviewRecord struct {
	CardID         uuid.UUID `json:"card_id"`
	Outcome        Outcome   `json:"outcome"`
	SequenceNumber int       `json:"sequence_number"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// Stats are running totals derived from a session's review records.
type Stats struct {
	StudiedCount   int     `json:"studied_count"`
	CorrectCount   int     `json:"correct_count"`
	IncorrectCount int     `json:"incorrect_count"`
	Accuracy       float64 `json:"accuracy"` // CorrectCount / StudiedCount, 0 when nothing studied
}
