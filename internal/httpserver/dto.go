// internal/httpserver/dto.go
//
// Wire shapes. The target word and unguessed tiles stay hidden until the
// round is over.

package httpserver

import (
	"github.com/robalobadob/endgame/internal/content"
	"github.com/robalobadob/endgame/internal/game"
	"github.com/robalobadob/endgame/internal/rules"
)

type contentRes struct {
	Alphabet        string         `json:"alphabet"`
	Items           []content.Item `json:"items"`
	MaxWrongGuesses int            `json:"maxWrongGuesses"`
	WordCount       int            `json:"wordCount"`
}

type tileRes struct {
	Letter  string `json:"letter"` // "" while hidden
	Guessed bool   `json:"guessed"`
	Missed  bool   `json:"missed"`
}

// stateRes is the client view of a session.
type stateRes struct {
	GameID           string            `json:"gameId"`
	Round            int               `json:"round"`
	Status           rules.Status      `json:"status"`
	Word             string            `json:"word,omitempty"`
	Tiles            []tileRes         `json:"tiles"`
	GuessedLetters   []string          `json:"guessedLetters"`
	Keys             []rules.Key       `json:"keys"`
	Items            []rules.ItemState `json:"items"`
	WrongGuessCount  int               `json:"wrongGuessCount"`
	MaxWrongGuesses  int               `json:"maxWrongGuesses"`
	RemainingGuesses int               `json:"remainingGuesses"`
	IsWon            bool              `json:"isWon"`
	IsLost           bool              `json:"isLost"`
	IsGameOver       bool              `json:"isGameOver"`
	LastGuess        string            `json:"lastGuess,omitempty"`
	LastGuessWrong   bool              `json:"lastGuessWrong"`
	LostItem         *content.Item     `json:"lostItem,omitempty"`
	Farewell         *string           `json:"farewell"`
}

func toStateRes(s game.Snapshot) stateRes {
	res := stateRes{
		GameID:           s.ID,
		Round:            s.Round,
		Status:           s.Status,
		Tiles:            make([]tileRes, len(s.Tiles)),
		GuessedLetters:   s.GuessedLetters,
		Keys:             s.Keys,
		Items:            s.Items,
		WrongGuessCount:  s.WrongGuessCount,
		MaxWrongGuesses:  s.MaxWrongGuesses,
		RemainingGuesses: s.RemainingGuesses,
		IsWon:            s.IsWon,
		IsLost:           s.IsLost,
		IsGameOver:       s.IsGameOver,
		LastGuess:        s.LastGuess,
		LastGuessWrong:   s.LastGuessWrong,
		LostItem:         s.LostItem,
	}
	if s.IsGameOver {
		res.Word = s.Word
	}
	for i, t := range s.Tiles {
		tr := tileRes{Guessed: t.Guessed, Missed: t.Missed}
		if t.Guessed || s.IsGameOver {
			tr.Letter = t.Letter
		}
		res.Tiles[i] = tr
	}
	if s.Farewell != "" {
		f := s.Farewell
		res.Farewell = &f
	}
	return res
}

type newGameReq struct {
	Word string `json:"word"` // fixed word, honoured outside production only
}

type guessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

type restartReq struct {
	GameID string `json:"gameId"`
}
