// internal/httpserver/server.go
//
// HTTP server wiring for the Endgame backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, logging).
//   - Public endpoints: "/", "/health", "/content".
//   - Game endpoints (optional auth): /game/new, /game/{id}, /game/guess, /game/restart.
//   - Live play: GET /game/{id}/ws.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Sessions live in memory (store.Store); finished rounds are recorded in SQLite.
//   - History writes are best effort: failures are logged, never returned to the player.

package httpserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/robalobadob/endgame/internal/auth"
	"github.com/robalobadob/endgame/internal/config"
	"github.com/robalobadob/endgame/internal/content"
	"github.com/robalobadob/endgame/internal/history"
	"github.com/robalobadob/endgame/internal/random"
	"github.com/robalobadob/endgame/internal/store"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Config   config.Config
	Catalog  *content.Catalog
	Sessions store.Store
	DB       *sql.DB
	Random   random.Source
}

// Server bundles router, session store and persistence.
type Server struct {
	r        *chi.Mux
	db       *sql.DB
	cfg      config.Config
	catalog  *content.Catalog
	sessions store.Store
	src      random.Source
	users    *auth.Users
	tokens   *auth.Tokens
	history  *history.Store
	upgrader websocket.Upgrader
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	src := d.Random
	if src == nil {
		src = random.Crypto()
	}
	s := &Server{
		r:        chi.NewRouter(),
		db:       d.DB,
		cfg:      d.Config,
		catalog:  d.Catalog,
		sessions: d.Sessions,
		src:      src,
		users:    auth.NewUsers(d.DB),
		tokens:   auth.NewTokens(d.Config.JWTSecret, d.Config.TokenTTL()),
		history:  history.NewStore(d.DB),
		now:      time.Now,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.cors)

	// websocket upgrades must not sit behind the request timeout
	s.r.With(s.withOptionalAuth()).Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(s.requestTimeout()))
		r.Use(jsonContentType)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service":   "endgame-go",
				"endpoints": []string{"/health", "/content", "POST /game/new", "POST /game/guess", "POST /game/restart", "/daily/*", "/auth/*"},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/content", s.handleContent)

		// Game endpoints: optional auth, guests can play
		r.Group(func(r chi.Router) {
			r.Use(s.withOptionalAuth())
			r.Post("/game/new", s.handleNewGame)
			r.Get("/game/{id}", s.handleGetGame)
			r.Post("/game/guess", s.handleGuess)
			r.Post("/game/restart", s.handleRestart)
			s.mountDaily(r)
		})

		s.mountAuthRoutes(r)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
		})
	})

	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) requestTimeout() time.Duration {
	if s.cfg.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return s.cfg.RequestTimeout
}

// handleContent describes the static content clients render.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contentRes{
		Alphabet:        content.Alphabet,
		Items:           s.catalog.Items(),
		MaxWrongGuesses: s.catalog.MaxWrongGuesses(),
		WordCount:       len(s.catalog.Words()),
	})
}
