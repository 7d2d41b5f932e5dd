package schedule

import (
	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/domain/srs"
)

// SpacedRepetition re-queues cards according to an SM-2 derived schedule.
//
// Time is a session clock that advances by one for every outcome fed back.
// A card is due once the clock reaches its due position; among due cards the
// smallest due position wins, ties going to the earlier deck position. Cards
// whose last answer graduated them (see srs.Service.IsGraduated) leave the
// session. When cards remain but none is due yet, the clock jumps forward
// to the earliest due position.
type SpacedRepetition struct {
	svc     srs.Service
	clock   int
	states  map[uuid.UUID]srs.CardState
	retired map[uuid.UUID]bool
}

var _ Policy = (*SpacedRepetition)(nil)

// NewSpacedRepetition creates a SpacedRepetition policy backed by svc.
func NewSpacedRepetition(svc srs.Service) *SpacedRepetition {
	return &SpacedRepetition{
		svc:     svc,
		states:  make(map[uuid.UUID]srs.CardState),
		retired: make(map[uuid.UUID]bool),
	}
}

// Name implements Policy.
func (*SpacedRepetition) Name() string { return string(KindSpacedRepetition) }

// NextCard implements Policy.
func (p *SpacedRepetition) NextCard(deck *domain.Deck, _ *domain.SessionState, last *Feedback) (domain.Card, bool) {
	if last != nil {
		p.apply(*last)
	}

	best, bestDue := -1, 0
	for i, card := range deck.Cards() {
		if p.retired[card.ID] {
			continue
		}
		due := p.CardState(card.ID).DuePosition
		// Cards are scanned in deck order, so strict < keeps the earlier card on ties.
		if best == -1 || due < bestDue {
			best, bestDue = i, due
		}
	}
	if best == -1 {
		return domain.Card{}, false
	}

	if bestDue > p.clock {
		p.clock = bestDue
	}
	return deck.Card(best)
}

// CardState returns the scheduling state of a card. Cards never reviewed
// report the service's initial state.
func (p *SpacedRepetition) CardState(id uuid.UUID) srs.CardState {
	if st, ok := p.states[id]; ok {
		return st
	}
	return p.svc.InitialState()
}

// Clock returns the current session clock.
func (p *SpacedRepetition) Clock() int { return p.clock }

func (p *SpacedRepetition) apply(fb Feedback) {
	p.clock++
	next, err := p.svc.CalculateNextReview(p.CardState(fb.CardID), fb.Outcome, p.clock)
	if err != nil {
		// The engine validates outcomes first; an invalid one only advances the clock.
		return
	}
	p.states[fb.CardID] = next
	if p.svc.IsGraduated(next) {
		p.retired[fb.CardID] = true
	}
}
