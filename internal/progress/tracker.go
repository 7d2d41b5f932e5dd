// Package progress keeps the append-only review log of a study session and
// derives running statistics from it.
package progress

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
)

// Tracker records review outcomes for one session.
type Tracker struct {
	records   []domain.ReviewRecord
	correct   int
	incorrect int
	nextSeq   int
	now       func() time.Time
}

// NewTracker creates an empty tracker. now stamps records and defaults to
// time.Now.
func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now, nextSeq: 1}
}

// Record appends a review record. Sequence numbers start at 1 and increase
// strictly, including across Reset.
func (t *Tracker) Record(cardID uuid.UUID, outcome domain.Outcome) (domain.ReviewRecord, error) {
	if !outcome.IsValid() {
		return domain.ReviewRecord{}, &domain.ValidationError{
			Row:    -1,
			Field:  "outcome",
			Reason: fmt.Sprintf("unknown outcome %q", outcome),
		}
	}

	rec := domain.ReviewRecord{
		CardID:         cardID,
		Outcome:        outcome,
		SequenceNumber: t.nextSeq,
		RecordedAt:     t.now().UTC(),
	}
	t.nextSeq++
	t.records = append(t.records, rec)

	if outcome == domain.OutcomeCorrect {
		t.correct++
	} else {
		t.incorrect++
	}
	return rec, nil
}

// Stats derives the running totals.
func (t *Tracker) Stats() domain.Stats {
	studied := len(t.records)
	stats := domain.Stats{
		StudiedCount:   studied,
		CorrectCount:   t.correct,
		IncorrectCount: t.incorrect,
	}
	if studied > 0 {
		stats.Accuracy = float64(t.correct) / float64(studied)
	}
	return stats
}

// Records returns a copy of the review log in recording order.
func (t *Tracker) Records() []domain.ReviewRecord {
	out := make([]domain.ReviewRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Len returns the number of records.
func (t *Tracker) Len() int { return len(t.records) }

// Reset discards all records and counts.
func (t *Tracker) Reset() {
	t.records = nil
	t.correct = 0
	t.incorrect = 0
}
