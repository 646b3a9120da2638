// internal/rules/board.go
//
// Per-letter and per-item views of a round.

package rules

import (
	"strings"

	"github.com/robalobadob/endgame/internal/content"
)

// KeyState is the keyboard status of one alphabet letter.
type KeyState string

const (
	KeyUnused  KeyState = "unused"
	KeyCorrect KeyState = "correct"
	KeyWrong   KeyState = "wrong"
)

// Tile is one position of the target word.
type Tile struct {
	Letter  string `json:"letter"`
	Guessed bool   `json:"guessed"`
	// Missed is set when the round is over and the letter was never guessed.
	Missed bool `json:"missed"`
}

// Key is the status of one letter of the alphabet.
type Key struct {
	Letter string   `json:"letter"`
	State  KeyState `json:"state"`
}

// ItemState pairs an item with whether it has been lost.
type ItemState struct {
	content.Item
	Lost bool `json:"lost"`
}

// Tiles reports the guessed status of every position in word.
func Tiles(word string, g Guesses, over bool) []Tile {
	out := make([]Tile, 0, len(word))
	for _, r := range word {
		t := Tile{Letter: string(r), Guessed: g.Has(r)}
		t.Missed = over && !t.Guessed
		out = append(out, t)
	}
	return out
}

// Keys reports the status of every alphabet letter.
func Keys(g Guesses, word string) []Key {
	out := make([]Key, 0, len(content.Alphabet))
	for _, r := range content.Alphabet {
		k := Key{Letter: string(r), State: KeyUnused}
		if g.Has(r) {
			if strings.ContainsRune(word, r) {
				k.State = KeyCorrect
			} else {
				k.State = KeyWrong
			}
		}
		out = append(out, k)
	}
	return out
}

// ItemStates marks the first wrong items as lost.
func ItemStates(items []content.Item, wrong int) []ItemState {
	out := make([]ItemState, len(items))
	for i, it := range items {
		out[i] = ItemState{Item: it, Lost: i < wrong}
	}
	return out
}
