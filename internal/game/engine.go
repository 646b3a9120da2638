// internal/game/engine.go
//
// Session controller for a single Endgame round.
// Responsibilities:
//   - Own the mutable state: target word, guess set, last submitted letter.
//   - SubmitLetter: validate, record, and pick a farewell for a lost item.
//   - StartNewRound: reset guesses and draw a new word.
//   - State: derive a Snapshot through the rules package.
//
// Notes:
//   - Won and Lost are terminal; submissions after game over are ignored.
//   - The last submitted letter is tracked explicitly, not inferred from set order.
//   - A Session is not safe for concurrent use; the store serialises access.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/endgame/internal/content"
	"github.com/robalobadob/endgame/internal/random"
	"github.com/robalobadob/endgame/internal/rules"
)

// Session holds the state of one player's game across rounds.
type Session struct {
	ID        string    // Unique session identifier (uuid).
	StartedAt time.Time // Start of the current round.

	catalog  *content.Catalog
	src      random.Source
	round    int
	word     string
	guessed  rules.Guesses
	order    []rune
	last     rune
	farewell string
}

// New constructs a session with a randomly chosen word.
func New(cat *content.Catalog, src random.Source) (*Session, error) {
	w, err := cat.RandomWord(src)
	if err != nil {
		return nil, fmt.Errorf("pick word: %w", err)
	}
	return newSession(cat, src, w), nil
}

// NewWithWord constructs a session with a fixed target word.
func NewWithWord(cat *content.Catalog, src random.Source, word string) (*Session, error) {
	w, err := content.NormalizeWord(word)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rules.ErrInvalidArgument, err)
	}
	return newSession(cat, src, w), nil
}

func newSession(cat *content.Catalog, src random.Source, word string) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		catalog: cat,
		src:     src,
	}
	s.reset(word)
	return s
}

func (s *Session) reset(word string) {
	s.round++
	s.word = word
	s.guessed = rules.NewGuesses()
	s.order = s.order[:0]
	s.last = 0
	s.farewell = ""
	s.StartedAt = time.Now().UTC()
}

// Word returns the current target word.
func (s *Session) Word() string { return s.word }

// Catalog returns the content the session plays with.
func (s *Session) Catalog() *content.Catalog { return s.catalog }

// SubmitLetter records a guess. It reports whether the guess set changed.
//
// Resubmitting a letter, or submitting once the round is over, is a no-op
// and not an error. Anything other than a single A–Z letter (either case)
// fails with rules.ErrInvalidArgument.
func (s *Session) SubmitLetter(letter string) (bool, error) {
	l, err := rules.NormalizeLetter(letter)
	if err != nil {
		return false, err
	}
	maxWrong := s.catalog.MaxWrongGuesses()
	if rules.IsGameOver(s.guessed, s.word, maxWrong) || s.guessed.Has(l) {
		return false, nil
	}

	s.guessed[l] = struct{}{}
	s.order = append(s.order, l)
	s.last = l
	s.farewell = ""

	if rules.ShouldBidFarewell(l, s.guessed, s.word, maxWrong) {
		item, err := rules.LostItem(s.catalog.Items(), rules.WrongGuessCount(s.guessed, s.word))
		if err != nil {
			return true, err
		}
		msg, err := rules.Farewell(item.Name, s.catalog.Farewells(), s.src)
		if err != nil {
			return true, err
		}
		s.farewell = msg
	}
	return true, nil
}

// StartNewRound clears the guesses and draws a new word. It may be called
// in any state.
func (s *Session) StartNewRound() error {
	w, err := s.catalog.RandomWord(s.src)
	if err != nil {
		return fmt.Errorf("pick word: %w", err)
	}
	s.reset(w)
	return nil
}

// StartRoundWithWord is StartNewRound with a fixed word.
func (s *Session) StartRoundWithWord(word string) error {
	w, err := content.NormalizeWord(word)
	if err != nil {
		return fmt.Errorf("%w: %w", rules.ErrInvalidArgument, err)
	}
	s.reset(w)
	return nil
}

// State derives a snapshot of the session.
func (s *Session) State() Snapshot {
	maxWrong := s.catalog.MaxWrongGuesses()
	items := s.catalog.Items()
	wrong := rules.WrongGuessCount(s.guessed, s.word)
	won := rules.IsWon(s.guessed, s.word)
	lost := rules.IsLost(s.guessed, s.word, maxWrong)
	over := won || lost

	snap := Snapshot{
		ID:               s.ID,
		Round:            s.round,
		Word:             s.word,
		GuessedLetters:   make([]string, 0, len(s.order)),
		Tiles:            rules.Tiles(s.word, s.guessed, over),
		Keys:             rules.Keys(s.guessed, s.word),
		Items:            rules.ItemStates(items, wrong),
		WrongGuessCount:  wrong,
		MaxWrongGuesses:  maxWrong,
		RemainingGuesses: rules.RemainingGuesses(wrong, maxWrong),
		Status:           rules.StatusOf(s.guessed, s.word, maxWrong),
		IsWon:            won,
		IsLost:           lost,
		IsGameOver:       over,
		LastGuessWrong:   rules.IsLastGuessWrong(s.last, s.word),
	}
	for _, l := range s.order {
		snap.GuessedLetters = append(snap.GuessedLetters, string(l))
	}
	if s.last != 0 {
		snap.LastGuess = string(s.last)
	}
	if wrong > 0 {
		if it, err := rules.LostItem(items, wrong); err == nil {
			snap.LostItem = &it
		}
	}
	if rules.ShouldBidFarewell(s.last, s.guessed, s.word, maxWrong) {
		snap.Farewell = s.farewell
	}
	return snap
}
