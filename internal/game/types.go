// internal/game/types.go
//
// Core type definitions for the session controller.
// Defines:
//   - Snapshot: everything a client needs to render a round, derived on read.

package game

import (
	"github.com/robalobadob/endgame/internal/content"
	"github.com/robalobadob/endgame/internal/rules"
)

// Snapshot is a read-only view of a session. It is recomputed on every call
// to Session.State and shares no memory with the session.
type Snapshot struct {
	ID               string            // Session identifier.
	Round            int               // 1 for the first round, incremented by StartNewRound.
	Word             string            // Raw target word (upper case). Callers decide when to reveal it.
	GuessedLetters   []string          // Submitted letters in submission order.
	Tiles            []rules.Tile      // Per-position guessed status.
	Keys             []rules.Key       // Per-alphabet-letter status.
	Items            []rules.ItemState // Items with their lost flag.
	WrongGuessCount  int
	MaxWrongGuesses  int
	RemainingGuesses int
	Status           rules.Status
	IsWon            bool
	IsLost           bool
	IsGameOver       bool
	LastGuess        string        // "" before the first submission.
	LastGuessWrong   bool
	LostItem         *content.Item // Item lost by the latest wrong guess, nil if none.
	Farewell         string        // "" unless a farewell applies.
}
