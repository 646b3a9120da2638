// internal/content/content.go
//
// Static game content: target words, the ordered item list and farewell
// templates. A Catalog is validated once at construction and never mutated.
//
// Validation rules (New):
//   - Words: non-empty; normalised to upper case; letters A–Z only.
//   - Items: non-empty; every item named.
//   - Farewells: non-empty; exactly one %s per template, no other verbs.
//   - MaxWrongGuesses must equal len(Items)-1 (0 means derive it).
package content

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/endgame/internal/random"
)

// Alphabet is the set of letters a player may submit, in keyboard order.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrNoWords          = errors.New("content: word list is empty")
	ErrInvalidWord      = errors.New("content: invalid word")
	ErrNoItems          = errors.New("content: item list is empty")
	ErrInvalidItem      = errors.New("content: invalid item")
	ErrNoFarewells      = errors.New("content: farewell list is empty")
	ErrInvalidFarewell  = errors.New("content: invalid farewell template")
	ErrMaxWrongMismatch = errors.New("content: max wrong guesses must equal item count minus one")
)

// Item is a themed entity lost on a wrong guess. Order in the catalog is the
// order in which items are lost.
type Item struct {
	Name            string `json:"name"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

// Catalog is the validated, read-only content a session plays with.
type Catalog struct {
	words     []string
	items     []Item
	farewells []string
	maxWrong  int
}

var upper = cases.Upper(language.Und)

// New validates the given tables and returns a Catalog.
// maxWrong of 0 derives the value from the item count.
func New(words []string, items []Item, farewells []string, maxWrong int) (*Catalog, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	ws := make([]string, 0, len(words))
	for _, w := range words {
		n, err := NormalizeWord(w)
		if err != nil {
			return nil, err
		}
		ws = append(ws, n)
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("%w: item %d has no name", ErrInvalidItem, i)
		}
	}

	if len(farewells) == 0 {
		return nil, ErrNoFarewells
	}
	for _, f := range farewells {
		if err := validateFarewell(f); err != nil {
			return nil, err
		}
	}

	if maxWrong == 0 {
		maxWrong = len(items) - 1
	}
	if maxWrong != len(items)-1 || maxWrong < 1 {
		return nil, fmt.Errorf("%w: got %d with %d items", ErrMaxWrongMismatch, maxWrong, len(items))
	}

	return &Catalog{
		words:     ws,
		items:     append([]Item(nil), items...),
		farewells: append([]string(nil), farewells...),
		maxWrong:  maxWrong,
	}, nil
}

// NormalizeWord upper-cases w and checks it only uses letters from Alphabet.
func NormalizeWord(w string) (string, error) {
	n := upper.String(strings.TrimSpace(w))
	if n == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidWord)
	}
	for _, r := range n {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidWord, w)
		}
	}
	return n, nil
}

func validateFarewell(t string) error {
	if strings.Count(t, "%s") != 1 || strings.Count(t, "%") != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidFarewell, t)
	}
	return nil
}

// Words returns a copy of the word list.
func (c *Catalog) Words() []string { return append([]string(nil), c.words...) }

// Items returns a copy of the item list.
func (c *Catalog) Items() []Item { return append([]Item(nil), c.items...) }

// Farewells returns a copy of the farewell templates.
func (c *Catalog) Farewells() []string { return append([]string(nil), c.farewells...) }

// MaxWrongGuesses is the number of items that can be lost.
func (c *Catalog) MaxWrongGuesses() int { return c.maxWrong }

// WordAt returns the word at index i modulo the list length.
func (c *Catalog) WordAt(i int) string {
	if i < 0 {
		i = -i
	}
	return c.words[i%len(c.words)]
}

// RandomWord picks a target word uniformly at random.
func (c *Catalog) RandomWord(src random.Source) (string, error) {
	return random.Pick(src, c.words)
}

// Contains reports whether w (any case) is in the word list.
func (c *Catalog) Contains(w string) bool {
	n, err := NormalizeWord(w)
	if err != nil {
		return false
	}
	for _, x := range c.words {
		if x == n {
			return true
		}
	}
	return false
}

// FormatFarewell substitutes name into a validated template.
func FormatFarewell(template, name string) string {
	return fmt.Sprintf(template, name)
}
