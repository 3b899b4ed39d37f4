package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var errConnClosed = errors.New("connection closed")

// client wraps one websocket connection. Outbound messages go through a
// buffered channel drained by writePump, so game code never blocks on a
// slow socket; a client whose buffer fills up just loses messages and will
// eventually be reaped by a write error.
type client struct {
	conn *websocket.Conn
	send chan any
	done chan struct{}
	once sync.Once
	log  zerolog.Logger
}

func newClient(conn *websocket.Conn, log zerolog.Logger) *client {
	return &client{
		conn: conn,
		send: make(chan any, 16),
		done: make(chan struct{}),
		log:  log,
	}
}

// Send implements game.Conn. It never blocks.
func (c *client) Send(v any) error {
	select {
	case <-c.done:
		return errConnClosed
	case c.send <- v:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

func (c *client) writePump() {
	for {
		select {
		case <-c.done:
			return
		case v := <-c.send:
			if err := c.conn.WriteJSON(v); err != nil {
				c.log.Debug().Err(err).Msg("write failed")
				c.close()
				return
			}
		}
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
