package game

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var ErrSessionNotFound = errors.New("session not found")

// Registry is the single owner of all live sessions. Sessions enter it when
// the matchmaking queue pairs two participants and leave it the moment they
// finish; a finished session can never be looked up again.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byConn   map[Conn]*Session

	content ContentProvider
	timing  Timing
	rng     *Rand
	log     zerolog.Logger
}

func NewRegistry(content ContentProvider, timing Timing, rng *Rand, log zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		byConn:   make(map[Conn]*Session),
		content:  content,
		timing:   timing,
		rng:      rng,
		log:      log,
	}
}

// StartSession pairs two participants into a new session, notifies the
// connected ones, and kicks off team selection. The session only becomes
// routable once begin has armed its selection timer: a message routed to a
// session with no pending timer would violate the phase machine.
func (r *Registry) StartSession(slotA, slotB *Participant) *Session {
	s := newSession(r, slotA, slotB)
	s.begin()

	r.mu.Lock()
	r.sessions[s.id] = s
	if slotA.Conn != nil {
		r.byConn[slotA.Conn] = s
	}
	if slotB.Conn != nil {
		r.byConn[slotB.Conn] = s
	}
	r.mu.Unlock()

	r.log.Info().
		Str("game", s.id).
		Str("playerA", slotA.Name).
		Str("playerB", slotB.Name).
		Bool("bot", slotB.Synthetic()).
		Msg("match started")

	return s
}

// SessionByConn finds the session owning a connection, for routing inbound
// messages. Returns nil when the connection is in no live session.
func (r *Registry) SessionByConn(c Conn) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byConn[c]
}

func (r *Registry) SessionByID(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// remove drops a finished session from all lookup paths. A connection's
// routing entry is only cleared if it still points at this session, so a
// connection that has since moved on keeps routing to its current match.
func (r *Registry) remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, s.id)
	if s.slotA.Conn != nil && r.byConn[s.slotA.Conn] == s {
		delete(r.byConn, s.slotA.Conn)
	}
	if s.slotB.Conn != nil && r.byConn[s.slotB.Conn] == s {
		delete(r.byConn, s.slotB.Conn)
	}
}
