package game

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/transferduel/backend/internal/content"
)

// fakeConn records everything sent to it and exposes a channel so tests can
// wait for specific messages without sleeping.
type fakeConn struct {
	mu   sync.Mutex
	msgs []any
	ch   chan any
}

func newFakeConn() *fakeConn {
	return &fakeConn{ch: make(chan any, 64)}
}

func (f *fakeConn) Send(v any) error {
	f.mu.Lock()
	f.msgs = append(f.msgs, v)
	f.mu.Unlock()
	f.ch <- v
	return nil
}

func (f *fakeConn) sent() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]any, len(f.msgs))
	copy(out, f.msgs)
	return out
}

// recvAs waits for the next message of type T, skipping other kinds.
func recvAs[T any](t *testing.T, f *fakeConn, within time.Duration) T {
	t.Helper()
	deadline := time.After(within)
	for {
		select {
		case v := <-f.ch:
			if m, ok := v.(T); ok {
				return m
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out after %v waiting for %T", within, zero)
			return zero
		}
	}
}

// recvNone asserts no message of type T arrives within the window.
func recvNone[T any](t *testing.T, f *fakeConn, within time.Duration) {
	t.Helper()
	deadline := time.After(within)
	for {
		select {
		case v := <-f.ch:
			if m, ok := v.(T); ok {
				t.Fatalf("expected no %T within %v, got %+v", m, within, m)
			}
		case <-deadline:
			return
		}
	}
}

// Timer budgets scaled down so a full match runs in well under a second.
func testTiming() Timing {
	return Timing{
		TeamSelect:  60 * time.Millisecond,
		TeamDisplay: 20 * time.Millisecond,
		Answer:      120 * time.Millisecond,
		BotDelayMin: 5 * time.Millisecond,
		BotDelayMax: 15 * time.Millisecond,
		BotAccuracy: 1.0,
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(content.NewProvider(), testTiming(), NewRand(1), zerolog.Nop())
}

// stubContent offers exactly two clubs and an answer for any mixed pair,
// so bot team picks are deterministic regardless of seed.
type stubContent struct{}

func (stubContent) AllTeams() []string { return []string{"Barcelona", "Real Madrid"} }

func (stubContent) AcceptableAnswers(teamA, teamB string) []string {
	if teamA == teamB {
		return nil
	}
	return []string{"Luis Figo", "Dani Alves"}
}

func (stubContent) DecoyAnswers() []string { return []string{"Zlatan"} }

func stubRegistry(t *testing.T, timing Timing) *Registry {
	t.Helper()
	return NewRegistry(stubContent{}, timing, NewRand(1), zerolog.Nop())
}
