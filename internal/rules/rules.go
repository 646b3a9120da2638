// internal/rules/rules.go
//
// Pure game rules for the Endgame hangman variant.
// Everything here derives state from (guesses, word, items, maxWrong) and
// mutates nothing, so any number of sessions may call in concurrently.
//
// Derivations:
//   - WrongGuessCount: guessed letters absent from the word.
//   - IsWon:           every distinct letter of the word guessed.
//   - IsLost:          wrong guesses reached maxWrong.
//   - LostItem:        items[wrong-1], the item the latest wrong guess cost.
//   - Farewell:        a random template formatted with that item's name.
//
// Status priority for display: won > lost > farewell.
package rules

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/endgame/internal/content"
	"github.com/robalobadob/endgame/internal/random"
)

var (
	// ErrInvalidArgument is shared with the random package.
	ErrInvalidArgument = random.ErrInvalidArgument

	// ErrOutOfRange reports an item attribution with no matching item.
	ErrOutOfRange = errors.New("out of range")
)

// Status is the coarse state of a round.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Guesses is the set of letters submitted in a round.
type Guesses map[rune]struct{}

// NewGuesses builds a set from the given letters.
func NewGuesses(letters ...rune) Guesses {
	g := make(Guesses, len(letters))
	for _, l := range letters {
		g[l] = struct{}{}
	}
	return g
}

// Has reports whether l was guessed.
func (g Guesses) Has(l rune) bool {
	_, ok := g[l]
	return ok
}

// NormalizeLetter accepts a single letter of either case and returns it in
// upper case.
func NormalizeLetter(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: letter must be a single character, got %q", ErrInvalidArgument, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return 0, fmt.Errorf("%w: %q is not in the alphabet", ErrInvalidArgument, s)
	}
	return r, nil
}

// letters returns the distinct letters of word.
func letters(word string) map[rune]struct{} {
	m := make(map[rune]struct{}, len(word))
	for _, r := range word {
		m[r] = struct{}{}
	}
	return m
}

// WrongGuessCount counts guessed letters that do not occur in word.
func WrongGuessCount(g Guesses, word string) int {
	in := letters(word)
	n := 0
	for l := range g {
		if _, ok := in[l]; !ok {
			n++
		}
	}
	return n
}

// IsWon reports whether every distinct letter of word has been guessed.
// An empty word is never won.
func IsWon(g Guesses, word string) bool {
	if word == "" {
		return false
	}
	for l := range letters(word) {
		if !g.Has(l) {
			return false
		}
	}
	return true
}

// IsLost reports whether the wrong guesses have reached maxWrong.
func IsLost(g Guesses, word string, maxWrong int) bool {
	return WrongGuessCount(g, word) >= maxWrong
}

// IsGameOver is IsWon || IsLost.
func IsGameOver(g Guesses, word string, maxWrong int) bool {
	return IsWon(g, word) || IsLost(g, word, maxWrong)
}

// StatusOf collapses the win and loss checks into a Status.
func StatusOf(g Guesses, word string, maxWrong int) Status {
	switch {
	case IsWon(g, word):
		return StatusWon
	case IsLost(g, word, maxWrong):
		return StatusLost
	default:
		return StatusPlaying
	}
}

// RemainingGuesses is how many more wrong guesses the player can afford.
func RemainingGuesses(wrong, maxWrong int) int {
	if wrong >= maxWrong {
		return 0
	}
	return maxWrong - wrong
}

// LostItem returns the item lost by the most recent wrong guess.
func LostItem(items []content.Item, wrong int) (content.Item, error) {
	if wrong < 1 || wrong > len(items) {
		return content.Item{}, fmt.Errorf("%w: no item for wrong guess count %d of %d items", ErrOutOfRange, wrong, len(items))
	}
	return items[wrong-1], nil
}

// IsLastGuessWrong reports whether last was submitted and missed word.
// The zero rune means nothing has been submitted.
func IsLastGuessWrong(last rune, word string) bool {
	return last != 0 && !strings.ContainsRune(word, last)
}

// ShouldBidFarewell reports whether a farewell message applies: the last
// guess was wrong and the round is still going.
func ShouldBidFarewell(last rune, g Guesses, word string, maxWrong int) bool {
	return IsLastGuessWrong(last, word) && !IsGameOver(g, word, maxWrong)
}

// Farewell formats a randomly chosen template with itemName.
func Farewell(itemName string, templates []string, src random.Source) (string, error) {
	t, err := random.Pick(src, templates)
	if err != nil {
		return "", fmt.Errorf("farewell: %w", err)
	}
	return content.FormatFarewell(t, itemName), nil
}
