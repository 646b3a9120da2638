// internal/history/history.go
//
// Persistence of finished and in-progress rounds for stats and "my games".
// Responsibilities:
//   - Start:      insert an owner row when a round begins.
//   - Record:     update guess counters; on game over, close the row and
//                 bump the owner's stats (users only) in the same transaction.
//   - Recent:     list a user's latest rounds.
//   - ClaimAnon:  move an anonymous player's rows onto a user account.
//
// The target word is written only once the round is over.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/endgame/internal/game"
)

// Owner identifies who played a round: a user or an anonymous cookie.
type Owner struct {
	UserID string
	AnonID string
}

func (o Owner) clause() (string, any) {
	if o.UserID != "" {
		return `user_id=?`, o.UserID
	}
	return `anonymous_id=?`, o.AnonID
}

// Row is one round as listed by Recent.
type Row struct {
	ID           string `json:"id"`
	Word         string `json:"word,omitempty"`
	Status       string `json:"status"`
	Guesses      int    `json:"guesses"`
	WrongGuesses int    `json:"wrongGuesses"`
	StartedAt    string `json:"startedAt"`
	FinishedAt   string `json:"finishedAt,omitempty"`
}

// Store reads and writes the games table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps db.
func NewStore(db *sql.DB) *Store { return &Store{db: db, now: time.Now} }

// RoundID is the games-table key for one round of a session.
func RoundID(snap game.Snapshot) string {
	return fmt.Sprintf("%s-%d", snap.ID, snap.Round)
}

func (s *Store) stamp() string { return s.now().UTC().Format(time.RFC3339) }

// Start inserts the row for the snapshot's round.
func (s *Store) Start(ctx context.Context, snap game.Snapshot, o Owner) error {
	var userID, anonID any
	if o.UserID != "" {
		userID = o.UserID
	} else {
		anonID = o.AnonID
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO games (id, user_id, anonymous_id, word, started_at, status, guesses)
	                                 VALUES (?,?,?,'',?,?,0)`,
		RoundID(snap), userID, anonID, s.stamp(), string(snap.Status))
	if err != nil {
		return fmt.Errorf("insert game row: %w", err)
	}
	return nil
}

// Record writes the snapshot's counters. When the round is over it closes the
// row and, for users, bumps stats. Stats are bumped at most once per round.
func (s *Store) Record(ctx context.Context, snap game.Snapshot, o Owner) error {
	ownerClause, ownerArg := o.clause()
	id := RoundID(snap)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE games SET guesses=?, wrong_guesses=? WHERE id=? AND `+ownerClause,
		len(snap.GuessedLetters), snap.WrongGuessCount, id, ownerArg); err != nil {
		return fmt.Errorf("update guesses: %w", err)
	}

	if snap.IsGameOver {
		res, err := tx.ExecContext(ctx, `UPDATE games SET status=?, word=?, finished_at=?
		                                 WHERE id=? AND status='playing' AND `+ownerClause,
			string(snap.Status), snap.Word, s.stamp(), id, ownerArg)
		if err != nil {
			return fmt.Errorf("finish game: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 1 && o.UserID != "" {
			if err := bumpStats(ctx, tx, o.UserID, snap.IsWon); err != nil {
				return fmt.Errorf("bump stats: %w", err)
			}
		}
	}
	return tx.Commit()
}

// bumpStats increments games played; updates wins and streak based on result.
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// Recent lists a user's latest rounds, newest first.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, word, status, guesses, wrong_guesses, started_at, COALESCE(finished_at,'')
	                                     FROM games WHERE user_id=? ORDER BY started_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.Word, &r.Status, &r.Guesses, &r.WrongGuesses, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClaimAnon transfers anonymous rounds to a user account.
func (s *Store) ClaimAnon(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}
