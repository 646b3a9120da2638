package history

import (
	"context"
	"testing"

	"github.com/robalobadob/endgame/internal/auth"
	"github.com/robalobadob/endgame/internal/content"
	"github.com/robalobadob/endgame/internal/database"
	"github.com/robalobadob/endgame/internal/game"
	"github.com/robalobadob/endgame/internal/random"
)

type fixture struct {
	ctx   context.Context
	store *Store
	users *auth.Users
	cat   *content.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenMigrated(ctx, database.Memory)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	cat, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{ctx: ctx, store: NewStore(db), users: auth.NewUsers(db), cat: cat}
}

func (f *fixture) play(t *testing.T, o Owner, word, letters string) *game.Session {
	t.Helper()
	s, err := game.NewWithWord(f.cat, random.Seeded(1), word)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.store.Start(f.ctx, s.State(), o); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, l := range letters {
		if _, err := s.SubmitLetter(string(l)); err != nil {
			t.Fatal(err)
		}
		if err := f.store.Record(f.ctx, s.State(), o); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	return s
}

func TestRecord_WinBumpsStatsOnce(t *testing.T) {
	f := newFixture(t)
	u, err := f.users.Create(f.ctx, "alice", "password1")
	if err != nil {
		t.Fatal(err)
	}
	o := Owner{UserID: u.ID}
	s := f.play(t, o, "cat", "XCAT")

	// A repeated record of the finished round must not count twice.
	if err := f.store.Record(f.ctx, s.State(), o); err != nil {
		t.Fatal(err)
	}

	got, err := f.users.ByID(f.ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.GamesPlayed != 1 || got.Wins != 1 || got.Streak != 1 {
		t.Errorf("unexpected stats: %+v", got)
	}

	rows, err := f.store.Recent(f.ctx, u.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.Status != "won" || r.Word != "CAT" || r.Guesses != 4 || r.WrongGuesses != 1 || r.FinishedAt == "" {
		t.Errorf("unexpected row: %+v", r)
	}
}

func TestRecord_LossResetsStreak(t *testing.T) {
	f := newFixture(t)
	u, _ := f.users.Create(f.ctx, "bob", "password1")
	o := Owner{UserID: u.ID}

	f.play(t, o, "cat", "CAT")
	f.play(t, o, "cat", "BDEFGHIJ")

	got, _ := f.users.ByID(f.ctx, u.ID)
	if got.GamesPlayed != 2 || got.Wins != 1 || got.Streak != 0 {
		t.Errorf("unexpected stats: %+v", got)
	}
}

func TestRecord_InProgressHidesWord(t *testing.T) {
	f := newFixture(t)
	u, _ := f.users.Create(f.ctx, "carol", "password1")
	f.play(t, Owner{UserID: u.ID}, "cat", "C")

	rows, _ := f.store.Recent(f.ctx, u.ID, 0)
	if len(rows) != 1 || rows[0].Word != "" || rows[0].Status != "playing" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestClaimAnon(t *testing.T) {
	f := newFixture(t)
	f.play(t, Owner{AnonID: "anon-1"}, "cat", "CAT")
	u, _ := f.users.Create(f.ctx, "dave", "password1")

	if err := f.store.ClaimAnon(f.ctx, "anon-1", u.ID); err != nil {
		t.Fatal(err)
	}
	rows, _ := f.store.Recent(f.ctx, u.ID, 10)
	if len(rows) != 1 {
		t.Fatalf("expected claimed row, got %d", len(rows))
	}
	if err := f.store.ClaimAnon(f.ctx, "", u.ID); err != nil {
		t.Errorf("empty anon id should be a no-op: %v", err)
	}
}
