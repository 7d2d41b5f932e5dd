package domain

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardFrontEmpty is returned when a card's front is empty after trimming.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardBackEmpty is returned when a card's back is empty after trimming.
	ErrCardBackEmpty = errors.New("card back cannot be empty")
)

// cardNamespace scopes the deterministic card IDs generated by NewDeck.
var cardNamespace = uuid.MustParse("6f1c2b8e-4d0a-5b7e-9a3c-2e5d8f1b7c40")

// Card is a single question/answer pair belonging to a deck.
type Card struct {
	ID       uuid.UUID `json:"id"`
	Front    string    `json:"front"`
	Back     string    `json:"back"`
	Deck     string    `json:"deck"`
	Position int       `json:"position"` // 0-based index within the deck
}

// Validate checks that the card has a question and an answer.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Front) == "" {
		return ErrCardFrontEmpty
	}
	if strings.TrimSpace(c.Back) == "" {
		return ErrCardBackEmpty
	}
	return nil
}

// CardID returns the ID a card at the given position in the named deck
// receives. The same deck and position always yield the same ID.
func CardID(deckName string, position int) uuid.UUID {
	key := strings.ToLower(deckName) + "\x00" + strconv.Itoa(position)
	return uuid.NewSHA1(cardNamespace, []byte(key))
}
