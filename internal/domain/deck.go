package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Deck is a named, ordered collection of cards. A Deck is immutable once
// built: accessors hand out copies, never the backing slice.
type Deck struct {
	name  string
	cards []Card
	index map[uuid.UUID]int
}

// NewDeck builds a deck from cards in the given order. Each card's Deck,
// Position and ID fields are assigned from its place in the deck. Cards
// failing Validate are rejected with a ValidationError naming their position.
func NewDeck(name string, cards []Card) (*Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Row: -1, Field: "deck", Reason: "deck name cannot be empty"}
	}

	d := &Deck{
		name:  name,
		cards: make([]Card, len(cards)),
		index: make(map[uuid.UUID]int, len(cards)),
	}
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			return nil, &ValidationError{Row: i, Field: fieldFor(err), Reason: err.Error()}
		}
		c.Front = strings.TrimSpace(c.Front)
		c.Back = strings.TrimSpace(c.Back)
		c.Deck = name
		c.Position = i
		c.ID = CardID(name, i)
		d.cards[i] = c
		d.index[c.ID] = i
	}
	return d, nil
}

func fieldFor(err error) string {
	if err == ErrCardBackEmpty {
		return "back"
	}
	return "front"
}

// Name returns the deck's name.
func (d *Deck) Name() string { return d.name }

// Len returns the number of cards in the deck.
func (d *Deck) Len() int { return len(d.cards) }

// IsEmpty reports whether the deck has no cards.
func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }

// Cards returns a copy of the deck's cards in deck order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Card returns the card at position i. ok is false when i is out of range.
func (d *Deck) Card(i int) (Card, bool) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, false
	}
	return d.cards[i], true
}

// CardByID looks a card up by its ID.
func (d *Deck) CardByID(id uuid.UUID) (Card, bool) {
	i, ok := d.index[id]
	if !ok {
		return Card{}, false
	}
	return d.cards[i], true
}

// Position returns the deck position of the card with the given ID, or -1.
func (d *Deck) Position(id uuid.UUID) int {
	if i, ok := d.index[id]; ok {
		return i
	}
	return -1
}
