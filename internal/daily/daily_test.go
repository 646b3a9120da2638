package daily

import (
	"context"
	"testing"
	"time"

	"github.com/robalobadob/endgame/internal/database"
)

func TestWordIndex_Deterministic(t *testing.T) {
	d := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)
	a := WordIndex(d, "salt", 90)
	b := WordIndex(d.Add(-23*time.Hour), "salt", 90)
	if a != b {
		t.Errorf("same date gave %d and %d", a, b)
	}
	if a < 0 || a >= 90 {
		t.Errorf("index out of range: %d", a)
	}
	if WordIndex(d, "salt", 0) != 0 {
		t.Error("empty list should give 0")
	}
}

func TestWordIndex_VariesAcrossDays(t *testing.T) {
	seen := map[int]bool{}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		seen[WordIndex(start.AddDate(0, 0, i), "salt", 1000)] = true
	}
	if len(seen) < 20 {
		t.Errorf("expected variety across 30 days, got %d distinct", len(seen))
	}
}

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("x", 5*3600)
	if got := DateKey(time.Date(2026, 3, 2, 1, 0, 0, 0, loc)); got != "2026-03-01" {
		t.Errorf("got %s", got)
	}
}

func TestStore_ResultsAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMigrated(ctx, database.Memory)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	s := NewStore(db)

	date := "2026-10-19"
	results := []Result{
		{OwnerID: "slow", Date: date, Won: true, Guesses: 8, WrongGuesses: 1, ElapsedMs: 9000},
		{OwnerID: "fast", Date: date, Won: true, Guesses: 7, WrongGuesses: 1, ElapsedMs: 3000},
		{OwnerID: "clean", Date: date, Won: true, Guesses: 6, WrongGuesses: 0, ElapsedMs: 20000},
		{OwnerID: "loser", Date: date, Won: false, Guesses: 10, WrongGuesses: 8, ElapsedMs: 1000},
	}
	for _, r := range results {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	// duplicate ignored
	if err := s.InsertResult(ctx, Result{OwnerID: "fast", Date: date, Won: true}); err != nil {
		t.Fatal(err)
	}

	played, err := s.AlreadyPlayed(ctx, "loser", date)
	if err != nil || !played {
		t.Errorf("AlreadyPlayed = %v, %v", played, err)
	}
	played, _ = s.AlreadyPlayed(ctx, "nobody", date)
	if played {
		t.Error("nobody has not played")
	}

	top, err := s.Leaderboard(ctx, date, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"clean", "fast", "slow"}
	if len(top) != len(want) {
		t.Fatalf("got %d rows, want %d", len(top), len(want))
	}
	for i, w := range want {
		if top[i].OwnerID != w {
			t.Errorf("rank %d: got %s, want %s", i, top[i].OwnerID, w)
		}
	}
	if top[1].ElapsedMs != 3000 {
		t.Errorf("duplicate insert overwrote result: %+v", top[1])
	}
}
