// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's round (creates or reuses a session)
//   - POST /daily/guess       → submit a letter for today's round
//   - GET  /daily/leaderboard → top 20 winners for today (or ?date=YYYY-MM-DD)
//
// Each owner can play once per day (enforced by DB + in-memory session).
// The word is chosen deterministically from the date and a salt; the result
// is persisted when the round ends, win or lose.

package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/endgame/internal/daily"
	"github.com/robalobadob/endgame/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // keyed by ownerID|date
	mu       sync.Mutex               // guards sessions and the sessions they hold
}

// dailySession holds transient state for an in-progress daily round.
type dailySession struct {
	session   *game.Session
	ownerID   string
	date      string
	wordIndex int
	recorded  bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key, word index and word.
func (d *dailyServer) today() (date string, idx int, word string) {
	now := d.srv.now().UTC()
	date = daily.DateKey(now)
	idx = daily.WordIndex(now, d.salt, len(d.srv.catalog.Words()))
	return date, idx, d.srv.catalog.WordAt(idx)
}

func (d *dailyServer) ownerID(w http.ResponseWriter, r *http.Request) string {
	o := d.srv.owner(w, r)
	if o.UserID != "" {
		return o.UserID
	}
	return o.AnonID
}

type dailyNewRes struct {
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	State  *stateRes `json:"state,omitempty"`
}

// handleNew creates or reuses today's session.
//   - If the owner already has a DB row for today → Played=true.
//   - Otherwise create/reuse an in-memory session and return its state.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := d.ownerID(w, r)
	date, idx, word := d.today()

	played, err := d.store.AlreadyPlayed(r.Context(), owner, date)
	if err != nil {
		writeErr(w, err)
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := owner + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, sess := range d.sessions {
		if sess.date != date {
			delete(d.sessions, k)
		}
	}
	sess, ok := d.sessions[key]
	if !ok {
		g, err := game.NewWithWord(d.srv.catalog, d.srv.src, word)
		if err != nil {
			writeErr(w, err)
			return
		}
		sess = &dailySession{session: g, ownerID: owner, date: date, wordIndex: idx}
		d.sessions[key] = sess
	}
	st := toStateRes(sess.session.State())
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: false, State: &st})
}

type dailyGuessRes struct {
	Date  string   `json:"date"`
	State stateRes `json:"state"`
}

// handleGuess applies a letter to today's session and persists the result
// once the round is over.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	owner := d.ownerID(w, r)
	var req guessReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date, _, _ := d.today()

	d.mu.Lock()
	sess, ok := d.sessions[owner+"|"+date]
	if !ok || sess.session.ID != req.GameID {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	if _, err := sess.session.SubmitLetter(req.Letter); err != nil {
		d.mu.Unlock()
		writeErr(w, err)
		return
	}
	snap := sess.session.State()
	finish := snap.IsGameOver && !sess.recorded
	if finish {
		sess.recorded = true
	}
	d.mu.Unlock()

	if finish {
		res := daily.Result{
			OwnerID:      owner,
			Date:         date,
			WordIndex:    sess.wordIndex,
			Won:          snap.IsWon,
			Guesses:      len(snap.GuessedLetters),
			WrongGuesses: snap.WrongGuessCount,
			ElapsedMs:    d.srv.now().Sub(sess.session.StartedAt).Milliseconds(),
		}
		if err := d.store.InsertResult(r.Context(), res); err != nil {
			log.Warn().Err(err).Str("owner", owner).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, dailyGuessRes{Date: date, State: toStateRes(snap)})
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
