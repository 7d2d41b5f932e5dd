package schedule

import "github.com/phrazzld/scry-study/internal/domain"

// Sequential presents every card once, in deck order. Its cursor is the
// length of the session's cursor history, so it keeps no state of its own.
type Sequential struct{}

var _ Policy = (*Sequential)(nil)

// NewSequential creates a Sequential policy.
func NewSequential() *Sequential { return &Sequential{} }

// Name implements Policy.
func (*Sequential) Name() string { return string(KindSequential) }

// NextCard implements Policy. Outcomes do not affect ordering.
func (*Sequential) NextCard(deck *domain.Deck, state *domain.SessionState, _ *Feedback) (domain.Card, bool) {
	return deck.Card(len(state.CursorHistory))
}
