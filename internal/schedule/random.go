package schedule

import (
	"math/rand/v2"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Random presents every card once in a shuffled order. The permutation is
// drawn on the first call from a PCG source seeded with Seed, so the same
// seed and deck always give the same order.
type Random struct {
	seed  uint64
	order []int
}

var _ Policy = (*Random)(nil)

// NewRandom creates a Random policy.
func NewRandom(seed uint64) *Random { return &Random{seed: seed} }

// Name implements Policy.
func (*Random) Name() string { return string(KindRandom) }

// NextCard implements Policy.
func (r *Random) NextCard(deck *domain.Deck, state *domain.SessionState, _ *Feedback) (domain.Card, bool) {
	if r.order == nil {
		rng := rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
		r.order = rng.Perm(deck.Len())
	}

	cursor := len(state.CursorHistory)
	if cursor >= len(r.order) {
		return domain.Card{}, false
	}
	return deck.Card(r.order[cursor])
}
