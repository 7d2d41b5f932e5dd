package schedule

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/domain/srs"
)

// Kind tags a scheduling variant.
type Kind string

// Available scheduling variants
const (
	KindSequential       Kind = "sequential"
	KindSpacedRepetition Kind = "spaced"
	KindRandom           Kind = "random"
)

// Feedback is the outcome of the card presented last.
type Feedback struct {
	CardID  uuid.UUID
	Outcome domain.Outcome
}

// Policy selects the next card to present.
type Policy interface {
	// Name returns the variant's Kind as a string.
	Name() string

	// NextCard returns the card to present next. last is nil when the
	// session has just started. ok is false when the session is complete.
	NextCard(deck *domain.Deck, state *domain.SessionState, last *Feedback) (card domain.Card, ok bool)
}

// Options configure the variants that need more than a deck.
type Options struct {
	// SRS drives SpacedRepetition. Defaults to srs.NewDefaultService().
	SRS srs.Service

	// Seed fixes the permutation used by Random.
	Seed uint64
}

// ParseKind converts a configured policy name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindSequential, KindSpacedRepetition, KindRandom:
		return k, nil
	case "":
		return KindSequential, nil
	}
	return "", fmt.Errorf("unknown scheduling policy %q", s)
}

// New creates a fresh policy of the given kind for one session.
func New(kind Kind, opts Options) (Policy, error) {
	switch kind {
	case KindSequential, "":
		return NewSequential(), nil
	case KindSpacedRepetition:
		svc := opts.SRS
		if svc == nil {
			svc = srs.NewDefaultService()
		}
		return NewSpacedRepetition(svc), nil
	case KindRandom:
		return NewRandom(opts.Seed), nil
	}
	return nil, fmt.Errorf("unknown scheduling policy %q", kind)
}
