// internal/httpserver/routes_game.go
//
// Free-play game endpoints:
//   - POST /game/new      → create a session (random word)
//   - GET  /game/{id}     → current state
//   - POST /game/guess    → submit a letter
//   - POST /game/restart  → start a new round in the same session

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/endgame/internal/game"
	"github.com/robalobadob/endgame/internal/history"
)

// owner resolves who is playing: the signed-in user or the anonymous cookie.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) history.Owner {
	if me := userFrom(r.Context()); me != nil {
		return history.Owner{UserID: me.ID}
	}
	return history.Owner{AnonID: s.ensureAnonID(w, r)}
}

// handleNewGame creates a session and records an owner row for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	// body is optional
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var (
		sess *game.Session
		err  error
	)
	if req.Word != "" && !s.cfg.Production() {
		sess, err = game.NewWithWord(s.catalog, s.src, req.Word)
	} else {
		sess, err = game.New(s.catalog, s.src)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	snap := sess.State()
	s.recordStart(r.Context(), snap, s.owner(w, r))
	log.Debug().Str("gameId", snap.ID).Msg("game created")
	writeJSON(w, http.StatusOK, toStateRes(snap))
}

// handleGetGame returns the current state of a session.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	err := s.sessions.View(r.Context(), chi.URLParam(r, "id"), func(g *game.Session) error {
		snap = g.State()
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateRes(snap))
}

// handleGuess submits a letter and persists progress (best effort).
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	snap, err := s.submit(r.Context(), req.GameID, req.Letter, s.owner(w, r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateRes(snap))
}

// handleRestart starts a new round in an existing session.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req restartReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	snap, err := s.restart(r.Context(), req.GameID, s.owner(w, r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateRes(snap))
}

// submit applies a letter under the store lock and records the result.
func (s *Server) submit(ctx context.Context, id, letter string, o history.Owner) (game.Snapshot, error) {
	var (
		snap    game.Snapshot
		changed bool
	)
	err := s.sessions.Update(ctx, id, func(g *game.Session) error {
		var err error
		changed, err = g.SubmitLetter(letter)
		snap = g.State()
		return err
	})
	if err != nil {
		return game.Snapshot{}, err
	}
	if changed {
		if err := s.history.Record(ctx, snap, o); err != nil {
			log.Warn().Err(err).Str("gameId", snap.ID).Msg("record guess")
		}
		if snap.IsGameOver {
			log.Info().Str("gameId", snap.ID).Str("status", string(snap.Status)).Int("wrong", snap.WrongGuessCount).Msg("game finished")
		}
	}
	return snap, nil
}

func (s *Server) restart(ctx context.Context, id string, o history.Owner) (game.Snapshot, error) {
	var snap game.Snapshot
	err := s.sessions.Update(ctx, id, func(g *game.Session) error {
		if err := g.StartNewRound(); err != nil {
			return err
		}
		snap = g.State()
		return nil
	})
	if err != nil {
		return game.Snapshot{}, err
	}
	s.recordStart(ctx, snap, o)
	return snap, nil
}

func (s *Server) recordStart(ctx context.Context, snap game.Snapshot, o history.Owner) {
	if err := s.history.Start(ctx, snap, o); err != nil {
		log.Warn().Err(err).Str("gameId", snap.ID).Msg("insert game row")
	}
}
