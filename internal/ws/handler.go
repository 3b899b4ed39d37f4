// Package ws is the transport layer: it upgrades connections, decodes the
// closed set of inbound message kinds, and routes them into the game
// orchestrator. Everything it cannot route is logged and dropped; it never
// guesses a sender's session.
package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/transferduel/backend/internal/game"
)

// ClientMessage is the one inbound frame shape. Type discriminates:
// "find_match", "team_selected", "player_answer".
type ClientMessage struct {
	Type       string `json:"type"`
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
	// Older clients send snake_case.
	PlayerNameAlt string `json:"player_name,omitempty"`
	Team          string `json:"team,omitempty"`
	Answer        string `json:"answer,omitempty"`
}

func (m ClientMessage) displayName() string {
	if m.PlayerName != "" {
		return m.PlayerName
	}
	return m.PlayerNameAlt
}

type Handler struct {
	queue    *game.Queue
	registry *game.Registry
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(queue *game.Queue, registry *game.Registry, log zerolog.Logger) *Handler {
	return &Handler{
		queue:    queue,
		registry: registry,
		log:      log,
		upgrader: websocket.Upgrader{
			// Game clients connect from app webviews and local dev hosts.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle is the gin endpoint for /ws.
func (h *Handler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	cl := newClient(conn, h.log)
	h.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("client connected")

	go cl.writePump()
	h.readLoop(cl)
}

func (h *Handler) readLoop(cl *client) {
	defer func() {
		cl.close()
		// A player still waiting for an opponent leaves the queue; a
		// running session keeps going without them.
		h.queue.Remove(cl)
		h.log.Info().Msg("client disconnected")
	}()

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Warn().Err(err).Msg("malformed message, dropped")
			continue
		}
		h.dispatch(cl, msg)
	}
}

func (h *Handler) dispatch(cl *client, msg ClientMessage) {
	switch msg.Type {
	case "find_match":
		h.queue.Enqueue(msg.PlayerID, msg.displayName(), cl)

	case "team_selected":
		if s := h.registry.SessionByConn(cl); s != nil {
			s.HandleTeamSelected(cl, msg.Team)
		} else {
			h.log.Debug().Msg("team_selected with no session, dropped")
		}

	case "player_answer":
		if s := h.registry.SessionByConn(cl); s != nil {
			s.HandleAnswer(cl, msg.Answer)
		} else {
			h.log.Debug().Msg("player_answer with no session, dropped")
		}

	default:
		h.log.Warn().Str("type", msg.Type).Msg("unknown message type, dropped")
	}
}
