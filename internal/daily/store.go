// internal/daily/store.go
//
// Daily challenge results. One row per owner per date; the leaderboard
// ranks winners by fewest wrong guesses, then fastest time.

package daily

import (
	"context"
	"database/sql"
)

// Result is one owner's finished daily round.
type Result struct {
	OwnerID      string `json:"ownerId"`
	Date         string `json:"date"`
	WordIndex    int    `json:"wordIndex"`
	Won          bool   `json:"won"`
	Guesses      int    `json:"guesses"`
	WrongGuesses int    `json:"wrongGuesses"`
	ElapsedMs    int64  `json:"elapsedMs"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	OwnerID      string `json:"ownerId"`
	Guesses      int    `json:"guesses"`
	WrongGuesses int    `json:"wrongGuesses"`
	ElapsedMs    int64  `json:"elapsedMs"`
}

// Store reads and writes daily_results.
type Store struct{ db *sql.DB }

// NewStore wraps db.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the owner has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, ownerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE owner_id=? AND date=?`,
		ownerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a result; a second result for the same owner and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(owner_id, date, word_index, won, guesses, wrong_guesses, elapsed_ms)
		 VALUES(?,?,?,?,?,?,?)`,
		r.OwnerID, r.Date, r.WordIndex, r.Won, r.Guesses, r.WrongGuesses, r.ElapsedMs,
	)
	return err
}

// Leaderboard returns the top winners for date.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner_id, guesses, wrong_guesses, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND won=1
		 ORDER BY wrong_guesses ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.Guesses, &r.WrongGuesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
