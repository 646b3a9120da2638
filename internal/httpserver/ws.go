// internal/httpserver/ws.go
//
// Live play over a websocket: GET /game/{id}/ws.
// The client sends {"type":"guess","letter":"A"} or {"type":"restart"};
// the server answers every message with the session state (or an error).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/endgame/internal/game"
	"github.com/robalobadob/endgame/internal/history"
	"github.com/robalobadob/endgame/internal/rules"
	"github.com/robalobadob/endgame/internal/store"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024
)

const (
	msgGuess   = "guess"
	msgRestart = "restart"
)

type wsClientMsg struct {
	Type   string `json:"type"`
	Letter string `json:"letter,omitempty"`
}

type wsErrorMsg struct {
	Error string `json:"error"`
}

// wsConn serialises writes; gorilla allows one concurrent writer.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// handleWS upgrades the connection and plays the session until the peer leaves.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var snap game.Snapshot
	if err := s.sessions.View(r.Context(), id, func(g *game.Session) error {
		snap = g.State()
		return nil
	}); err != nil {
		writeErr(w, err)
		return
	}

	// Set-Cookie must travel with the upgrade response
	o, hdr := s.wsOwner(r)
	conn, err := s.upgrader.Upgrade(w, r, hdr)
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("websocket upgrade failed")
		return
	}
	c := &wsConn{conn: conn}
	defer conn.Close()
	log.Info().Str("gameId", id).Msg("websocket connected")

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			}
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := c.send(toStateRes(snap)); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("gameId", id).Msg("websocket read error")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var reply any
		snap, err := s.applyWS(r, id, data, o)
		if err != nil {
			reply = wsErrorMsg{Error: wsErrorText(err)}
		} else {
			reply = toStateRes(snap)
		}
		if err := c.send(reply); err != nil {
			return
		}
	}
}

// applyWS decodes one client message and applies it to the session.
func (s *Server) applyWS(r *http.Request, id string, data []byte, o history.Owner) (game.Snapshot, error) {
	var msg wsClientMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return game.Snapshot{}, errBadJSON
	}
	switch msg.Type {
	case msgGuess:
		return s.submit(r.Context(), id, msg.Letter, o)
	case msgRestart:
		return s.restart(r.Context(), id, o)
	default:
		return game.Snapshot{}, errUnknownMessage
	}
}

var errUnknownMessage = errors.New("unknown_message_type")

func wsErrorText(err error) string {
	switch {
	case errors.Is(err, errBadJSON), errors.Is(err, errUnknownMessage), errors.Is(err, rules.ErrInvalidArgument):
		return err.Error()
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	default:
		log.Error().Err(err).Msg("websocket message failed")
		return "internal_error"
	}
}

// wsOwner resolves the owner without touching the response writer, returning
// any cookie that must be sent with the upgrade.
func (s *Server) wsOwner(r *http.Request) (history.Owner, http.Header) {
	if me := userFrom(r.Context()); me != nil {
		return history.Owner{UserID: me.ID}, nil
	}
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return history.Owner{AnonID: c.Value}, nil
	}
	id := uuid.NewString()
	hdr := http.Header{}
	hdr.Add("Set-Cookie", s.cookie(anonCookieName, id, time.Now().Add(180*24*time.Hour)).String())
	return history.Owner{AnonID: id}, hdr
}
