package random_test

import (
	"errors"
	"testing"

	"github.com/robalobadob/endgame/internal/random"
)

type fixedSource struct{ val int }

func (f fixedSource) IntN(n int) int { return f.val % n }

type badSource struct{}

func (badSource) IntN(n int) int { return n }

func TestPick_SingleElement(t *testing.T) {
	src := random.Seeded(42)
	for i := 0; i < 1000; i++ {
		got, err := random.Pick(src, []string{"only"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "only" {
			t.Fatalf("trial %d: got %q, want %q", i, got, "only")
		}
	}
}

func TestPick_Empty(t *testing.T) {
	_, err := random.Pick(random.Crypto(), []int{})
	if !errors.Is(err, random.ErrEmptySequence) {
		t.Fatalf("expected ErrEmptySequence, got %v", err)
	}
	if !errors.Is(err, random.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument classification, got %v", err)
	}
}

func TestPick_UsesSource(t *testing.T) {
	seq := []string{"a", "b", "c"}
	for i, want := range seq {
		got, err := random.Pick(fixedSource{val: i}, seq)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("val %d: got %q, want %q", i, got, want)
		}
	}
}

func TestPick_RejectsOutOfRangeSource(t *testing.T) {
	if _, err := random.Pick(badSource{}, []int{1, 2}); err == nil {
		t.Fatal("expected error for out-of-range source")
	}
}

func TestSeeded_Deterministic(t *testing.T) {
	a, b := random.Seeded(7), random.Seeded(7)
	for i := 0; i < 50; i++ {
		if x, y := a.IntN(100), b.IntN(100); x != y {
			t.Fatalf("step %d: %d != %d", i, x, y)
		}
	}
}

func TestCrypto_CoversRange(t *testing.T) {
	src := random.Crypto()
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		v := src.IntN(4)
		if v < 0 || v >= 4 {
			t.Fatalf("out of range: %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected all 4 indices, saw %v", seen)
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := random.NewSeed(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
