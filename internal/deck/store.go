package deck

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-study/internal/domain"
)

// Row is one already-decoded input record.
type Row struct {
	Front string `csv:"front" validate:"required"`
	Back  string `csv:"back" validate:"required"`
	Deck  string `csv:"deck" validate:"required"`
}

// Store holds built decks in first-seen order.
type Store struct {
	decks []*domain.Deck
	byKey map[string]*domain.Deck
}

// NewStore creates a store over decks that were built elsewhere. Later
// decks with a name already present are ignored.
func NewStore(decks ...*domain.Deck) *Store {
	s := &Store{byKey: make(map[string]*domain.Deck, len(decks))}
	for _, d := range decks {
		if d == nil {
			continue
		}
		key := deckKey(d.Name())
		if _, ok := s.byKey[key]; ok {
			continue
		}
		s.byKey[key] = d
		s.decks = append(s.decks, d)
	}
	return s
}

// BuildDecks groups rows into decks, preserving the order in which decks
// and cards first appear. Rows whose front, back or deck is blank after
// trimming are skipped and reported; every remaining row becomes a card.
func BuildDecks(rows []Row) (*Store, []*domain.ValidationError) {
	validate := newRowValidator()

	var (
		order   []string
		names   = make(map[string]string)
		grouped = make(map[string][]domain.Card)
		rejects []*domain.ValidationError
	)

	for i, raw := range rows {
		row := Row{
			Front: strings.TrimSpace(raw.Front),
			Back:  strings.TrimSpace(raw.Back),
			Deck:  strings.TrimSpace(raw.Deck),
		}

		if errs := validateRow(validate, i, row); len(errs) > 0 {
			rejects = append(rejects, errs...)
			continue
		}

		key := deckKey(row.Deck)
		if _, seen := names[key]; !seen {
			names[key] = row.Deck
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], domain.Card{Front: row.Front, Back: row.Back})
	}

	decks := make([]*domain.Deck, 0, len(order))
	for _, key := range order {
		// Rows were validated above, so NewDeck cannot reject them.
		d, err := domain.NewDeck(names[key], grouped[key])
		if err != nil {
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				rejects = append(rejects, vErr)
			}
			continue
		}
		decks = append(decks, d)
	}

	return NewStore(decks...), rejects
}

// ListDecks returns deck names in first-seen order.
func (s *Store) ListDecks() []string {
	names := make([]string, len(s.decks))
	for i, d := range s.decks {
		names[i] = d.Name()
	}
	return names
}

// GetDeck returns the deck with the given name, compared case-insensitively.
func (s *Store) GetDeck(name string) (*domain.Deck, error) {
	d, ok := s.byKey[deckKey(name)]
	if !ok {
		return nil, &domain.DeckNotFoundError{Name: name}
	}
	return d, nil
}

// Len returns the number of decks.
func (s *Store) Len() int { return len(s.decks) }

func deckKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func newRowValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("csv"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

func validateRow(v *validator.Validate, index int, row Row) []*domain.ValidationError {
	err := v.Struct(row)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []*domain.ValidationError{{Row: index, Field: "row", Reason: err.Error()}}
	}

	out := make([]*domain.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &domain.ValidationError{
			Row:    index,
			Field:  fe.Field(),
			Reason: reasonFor(fe),
		})
	}
	return out
}

func reasonFor(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "cannot be empty"
	}
	return "failed " + fe.Tag() + " check"
}
