package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const botDisplayName = "Bot Opponent"

// Queue pairs players FIFO. A player who waits longer than the configured
// threshold is matched against a synthetic opponent instead, exactly once:
// the fallback timer checks queue membership before acting, so a player
// matched just before the timer fires is never matched again.
type Queue struct {
	mu      sync.Mutex
	waiting []*waiter

	reg  *Registry
	wait time.Duration
	log  zerolog.Logger
}

type waiter struct {
	p     *Participant
	timer *time.Timer
}

func NewQueue(reg *Registry, wait time.Duration, log zerolog.Logger) *Queue {
	return &Queue{reg: reg, wait: wait, log: log}
}

// Enqueue registers a matchmaking request. If someone is already waiting
// the two are paired immediately; otherwise the caller waits with a
// bot-fallback timer running. The returned participant's display name
// carries the arrival number, as the game client expects. A connection
// already owning a live session is never a second one's slot: its
// find_match is dropped and nil returned.
func (q *Queue) Enqueue(id, name string, conn Conn) *Participant {
	if s := q.reg.SessionByConn(conn); s != nil {
		q.log.Debug().Str("game", s.ID()).Msg("find_match from a connection in a live match, dropped")
		return nil
	}

	q.mu.Lock()

	for _, w := range q.waiting {
		if w.p.Conn == conn {
			q.mu.Unlock()
			return w.p
		}
	}

	if name == "" {
		name = "Player"
	}
	p := NewParticipant(id, fmt.Sprintf("%s %d", name, len(q.waiting)+1), conn)
	q.log.Info().Str("player", p.Name).Str("id", p.ID).Msg("looking for a match")

	if len(q.waiting) > 0 {
		head := q.waiting[0]
		q.waiting = q.waiting[1:]
		head.timer.Stop()
		q.mu.Unlock()

		q.reg.StartSession(head.p, p)
		return p
	}

	w := &waiter{p: p}
	w.timer = time.AfterFunc(q.wait, func() { q.botFallback(p) })
	q.waiting = append(q.waiting, w)
	q.mu.Unlock()

	if err := p.send(SearchingMessage{Type: "searching", Message: "Searching for an opponent..."}); err != nil {
		q.log.Warn().Err(err).Str("player", p.Name).Msg("send failed")
	}
	return p
}

// botFallback fires when a waiting player ran out the clock. Membership is
// re-checked under the lock: a player already matched is left alone.
func (q *Queue) botFallback(p *Participant) {
	q.mu.Lock()
	found := false
	for i, w := range q.waiting {
		if w.p == p {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			found = true
			break
		}
	}
	q.mu.Unlock()
	if !found {
		return
	}

	bot := NewParticipant("bot_"+uuid.NewString()[:6], botDisplayName, nil)
	q.log.Info().Str("player", p.Name).Msg("no opponent found, matching with bot")
	q.reg.StartSession(p, bot)
}

// Remove drops a waiting participant whose connection went away.
func (q *Queue) Remove(conn Conn) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, w := range q.waiting {
		if w.p.Conn == conn {
			w.timer.Stop()
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			q.log.Info().Str("player", w.p.Name).Msg("removed from matchmaking")
			return
		}
	}
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}
