package rules_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/endgame/internal/content"
	"github.com/robalobadob/endgame/internal/random"
	"github.com/robalobadob/endgame/internal/rules"
)

type fixedRNG struct{ val int }

func (r fixedRNG) IntN(n int) int { return r.val % n }

func guesses(s string) rules.Guesses {
	return rules.NewGuesses([]rune(s)...)
}

func TestWrongGuessCount(t *testing.T) {
	cases := []struct {
		guessed string
		word    string
		want    int
	}{
		{"", "CAT", 0},
		{"ACT", "CAT", 0},
		{"XY", "CAT", 2},
		{"AXL", "BALL", 1},
		{"LXYZ", "BALL", 3},
	}
	for _, tc := range cases {
		if got := rules.WrongGuessCount(guesses(tc.guessed), tc.word); got != tc.want {
			t.Errorf("WrongGuessCount(%q, %q) = %d, want %d", tc.guessed, tc.word, got, tc.want)
		}
	}
}

func TestIsWon_DistinctLetters(t *testing.T) {
	cases := []struct {
		guessed string
		word    string
		want    bool
	}{
		{"BAL", "BALL", true},
		{"BA", "BALL", false},
		{"BALXYZ", "BALL", true},
		{"", "A", false},
		{"ABC", "", false},
	}
	for _, tc := range cases {
		if got := rules.IsWon(guesses(tc.guessed), tc.word); got != tc.want {
			t.Errorf("IsWon(%q, %q) = %v, want %v", tc.guessed, tc.word, got, tc.want)
		}
	}
}

func TestScenario_CAT_Win(t *testing.T) {
	g := rules.NewGuesses()
	for i, l := range "ACT" {
		g[l] = struct{}{}
		if n := rules.WrongGuessCount(g, "CAT"); n != 0 {
			t.Fatalf("after %c: wrong = %d, want 0", l, n)
		}
		won := rules.IsWon(g, "CAT")
		if want := i == 2; won != want {
			t.Fatalf("after %c: won = %v, want %v", l, won, want)
		}
	}
	if s := rules.StatusOf(g, "CAT", 2); s != rules.StatusWon {
		t.Errorf("status = %s, want won", s)
	}
}

func TestScenario_CAT_Loss(t *testing.T) {
	g := rules.NewGuesses('X')
	if n := rules.WrongGuessCount(g, "CAT"); n != 1 {
		t.Fatalf("wrong = %d, want 1", n)
	}
	if rules.IsGameOver(g, "CAT", 2) {
		t.Fatal("game over after one wrong guess")
	}
	g['Y'] = struct{}{}
	if n := rules.WrongGuessCount(g, "CAT"); n != 2 {
		t.Fatalf("wrong = %d, want 2", n)
	}
	if !rules.IsLost(g, "CAT", 2) || !rules.IsGameOver(g, "CAT", 2) {
		t.Fatal("expected lost and game over")
	}
	if s := rules.StatusOf(g, "CAT", 2); s != rules.StatusLost {
		t.Errorf("status = %s, want lost", s)
	}
}

func TestLostItem(t *testing.T) {
	items := []content.Item{{Name: "H"}, {Name: "C"}, {Name: "J"}}
	for k := 1; k <= len(items); k++ {
		it, err := rules.LostItem(items, k)
		if err != nil {
			t.Fatalf("k=%d: unexpected error: %v", k, err)
		}
		if it != items[k-1] {
			t.Errorf("k=%d: got %v, want %v", k, it, items[k-1])
		}
	}
	for _, k := range []int{0, -1, 4} {
		if _, err := rules.LostItem(items, k); !errors.Is(err, rules.ErrOutOfRange) {
			t.Errorf("k=%d: expected ErrOutOfRange, got %v", k, err)
		}
	}
}

func TestIsLastGuessWrong(t *testing.T) {
	if rules.IsLastGuessWrong(0, "CAT") {
		t.Error("no guess should not be wrong")
	}
	if rules.IsLastGuessWrong('C', "CAT") {
		t.Error("C is in CAT")
	}
	if !rules.IsLastGuessWrong('Z', "CAT") {
		t.Error("Z is not in CAT")
	}
}

func TestShouldBidFarewell(t *testing.T) {
	if !rules.ShouldBidFarewell('X', guesses("X"), "CAT", 2) {
		t.Error("expected farewell after first wrong guess")
	}
	if rules.ShouldBidFarewell('Y', guesses("XY"), "CAT", 2) {
		t.Error("farewell must be suppressed once lost")
	}
	if rules.ShouldBidFarewell('A', guesses("XA"), "CAT", 2) {
		t.Error("farewell only follows a wrong guess")
	}
}

func TestFarewell(t *testing.T) {
	templates := []string{"Farewell, %s", "Oh no, not %s!"}
	got, err := rules.Farewell("Ruby", templates, fixedRNG{val: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Oh no, not Ruby!" {
		t.Errorf("got %q", got)
	}

	if _, err := rules.Farewell("Ruby", nil, fixedRNG{}); !errors.Is(err, rules.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if !errors.Is(random.ErrEmptySequence, rules.ErrInvalidArgument) {
		t.Error("random and rules should share the invalid-argument class")
	}
}

func TestNormalizeLetter(t *testing.T) {
	ok := map[string]rune{"a": 'A', "Z": 'Z', " q ": 'Q'}
	for in, want := range ok {
		got, err := rules.NormalizeLetter(in)
		if err != nil || got != want {
			t.Errorf("NormalizeLetter(%q) = %c, %v; want %c", in, got, err, want)
		}
	}
	for _, in := range []string{"", "ab", "1", "é", "-"} {
		if _, err := rules.NormalizeLetter(in); !errors.Is(err, rules.ErrInvalidArgument) {
			t.Errorf("NormalizeLetter(%q): expected ErrInvalidArgument, got %v", in, err)
		}
	}
}

func TestTiles(t *testing.T) {
	tiles := rules.Tiles("HELLO", guesses("HL"), false)
	var b strings.Builder
	for _, tl := range tiles {
		if tl.Missed {
			t.Fatal("no tile is missed while playing")
		}
		if tl.Guessed {
			b.WriteString(tl.Letter)
		} else {
			b.WriteString("_")
		}
	}
	if b.String() != "H_LL_" {
		t.Errorf("got %q", b.String())
	}

	over := rules.Tiles("HELLO", guesses("HL"), true)
	if !over[1].Missed || !over[4].Missed || over[0].Missed {
		t.Errorf("unexpected reveal: %+v", over)
	}
}

func TestKeys(t *testing.T) {
	keys := rules.Keys(guesses("AZ"), "CAT")
	if len(keys) != len(content.Alphabet) {
		t.Fatalf("expected %d keys, got %d", len(content.Alphabet), len(keys))
	}
	want := map[string]rules.KeyState{"A": rules.KeyCorrect, "Z": rules.KeyWrong, "B": rules.KeyUnused}
	for _, k := range keys {
		if s, ok := want[k.Letter]; ok && k.State != s {
			t.Errorf("key %s: got %s, want %s", k.Letter, k.State, s)
		}
	}
}

func TestItemStates(t *testing.T) {
	items := []content.Item{{Name: "H"}, {Name: "C"}, {Name: "J"}}
	st := rules.ItemStates(items, 1)
	if !st[0].Lost || st[1].Lost || st[2].Lost {
		t.Errorf("unexpected states: %+v", st)
	}
}

func TestRemainingGuesses(t *testing.T) {
	if got := rules.RemainingGuesses(3, 8); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
	if got := rules.RemainingGuesses(9, 8); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
