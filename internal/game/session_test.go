package game

import (
	"strings"
	"testing"
	"time"
)

func startHumanMatch(t *testing.T, reg *Registry) (*Session, *fakeConn, *fakeConn) {
	t.Helper()
	c1, c2 := newFakeConn(), newFakeConn()
	s := reg.StartSession(
		NewParticipant("", "Alice", c1),
		NewParticipant("", "Bob", c2),
	)
	recvAs[MatchFoundMessage](t, c1, time.Second)
	recvAs[MatchFoundMessage](t, c2, time.Second)
	return s, c1, c2
}

func TestFullMatchHumanWins(t *testing.T) {
	reg := testRegistry(t)
	s, c1, c2 := startHumanMatch(t, reg)

	s.HandleTeamSelected(c1, "Barcelona")
	confirm := recvAs[TeamSelectedConfirmMessage](t, c1, time.Second)
	if confirm.Team != "Barcelona" {
		t.Fatalf("expected confirmation for Barcelona, got %q", confirm.Team)
	}

	s.HandleTeamSelected(c2, "Real Madrid")

	// Both selections in: selection timer is cancelled and display starts.
	d1 := recvAs[TeamDisplayMessage](t, c1, time.Second)
	if d1.PlayerTeam != "Barcelona" || d1.OpponentTeam != "Real Madrid" {
		t.Fatalf("mirrored display wrong for slot A: %+v", d1)
	}
	d2 := recvAs[TeamDisplayMessage](t, c2, time.Second)
	if d2.PlayerTeam != "Real Madrid" || d2.OpponentTeam != "Barcelona" {
		t.Fatalf("mirrored display wrong for slot B: %+v", d2)
	}

	g1 := recvAs[GameStartedMessage](t, c1, time.Second)
	recvAs[GameStartedMessage](t, c2, time.Second)
	if !strings.Contains(g1.QuestionText, "Barcelona vs Real Madrid") {
		t.Fatalf("question text missing matchup: %q", g1.QuestionText)
	}

	s.HandleAnswer(c1, "  Luis Figo  ")

	f1 := recvAs[GameFinishedMessage](t, c1, time.Second)
	f2 := recvAs[GameFinishedMessage](t, c2, time.Second)

	if !f1.Won || f1.Points != 10 || f1.Winner != "Alice" {
		t.Fatalf("winner result wrong: %+v", f1)
	}
	if f2.Won || f2.Points != -10 || f2.Winner != "Alice" {
		t.Fatalf("loser result wrong: %+v", f2)
	}
	if f1.PlayerTeam != "Barcelona" || f1.OpponentTeam != "Real Madrid" {
		t.Fatalf("winner teams wrong: %+v", f1)
	}
	if f2.PlayerName != "Bob" || f2.OpponentName != "Alice" {
		t.Fatalf("loser names wrong: %+v", f2)
	}

	if reg.Len() != 0 {
		t.Fatalf("finished session should leave the registry, %d remain", reg.Len())
	}
}

func TestEarlyAdvanceCancelsSelectionTimer(t *testing.T) {
	reg := testRegistry(t)
	s, c1, c2 := startHumanMatch(t, reg)

	s.HandleTeamSelected(c1, "Barcelona")
	s.HandleTeamSelected(c2, "Real Madrid")
	recvAs[TeamDisplayMessage](t, c1, time.Second)

	// Outlive the original selection budget: the stale timer must not
	// trigger a second display.
	recvNone[TeamDisplayMessage](t, c1, 100*time.Millisecond)
}

func TestSameTeamsSkipsPlaying(t *testing.T) {
	reg := testRegistry(t)
	s, c1, c2 := startHumanMatch(t, reg)

	s.HandleTeamSelected(c1, "Barcelona")
	s.HandleTeamSelected(c2, "Barcelona")

	f1 := recvAs[GameFinishedMessage](t, c1, time.Second)
	f2 := recvAs[GameFinishedMessage](t, c2, time.Second)

	if f1.Won || f2.Won || f1.Points != 0 || f2.Points != 0 {
		t.Fatalf("same-team match must end drawn: %+v / %+v", f1, f2)
	}
	if f1.Reason != ReasonSameTeams {
		t.Fatalf("expected reason %q, got %q", ReasonSameTeams, f1.Reason)
	}
	for _, v := range c1.sent() {
		if _, ok := v.(GameStartedMessage); ok {
			t.Fatal("playing phase must be skipped when teams match")
		}
	}
}

func TestUnknownPairingEndsWithoutWinner(t *testing.T) {
	reg := testRegistry(t)
	s, c1, _ := startHumanMatch(t, reg)

	// Arsenal and Real Madrid share no transfer history in the table.
	s.HandleTeamSelected(c1, "Arsenal")
	s.HandleTeamSelected(s.slotB.Conn, "Real Madrid")

	f := recvAs[GameFinishedMessage](t, c1, time.Second)
	if f.Won || f.Points != 0 || f.Reason != ReasonNoAnswers {
		t.Fatalf("expected no-answer draw, got %+v", f)
	}
}

func TestAnswerTimeoutIsDraw(t *testing.T) {
	reg := testRegistry(t)
	s, c1, c2 := startHumanMatch(t, reg)

	s.HandleTeamSelected(c1, "Barcelona")
	s.HandleTeamSelected(c2, "Real Madrid")
	recvAs[GameStartedMessage](t, c1, time.Second)

	f1 := recvAs[GameFinishedMessage](t, c1, time.Second)
	f2 := recvAs[GameFinishedMessage](t, c2, time.Second)
	if f1.Won || f2.Won || f1.Points != 0 || f2.Points != 0 || f1.Winner != "" {
		t.Fatalf("timeout must score 0/0 with no winner: %+v / %+v", f1, f2)
	}
}

func TestWrongAnswerAllowsRetry(t *testing.T) {
	reg := testRegistry(t)
	s, c1, c2 := startHumanMatch(t, reg)

	s.HandleTeamSelected(c1, "Barcelona")
	s.HandleTeamSelected(c2, "Real Madrid")
	recvAs[GameStartedMessage](t, c1, time.Second)

	s.HandleAnswer(c1, "figo")
	w := recvAs[WrongAnswerMessage](t, c1, time.Second)
	if w.Message == "" {
		t.Fatal("wrong answer should carry a retry notice")
	}
	// The notice is private to the submitter.
	recvNone[WrongAnswerMessage](t, c2, 30*time.Millisecond)

	if got := s.Phase(); got != PhasePlaying {
		t.Fatalf("wrong answer must not end the phase, got %s", got)
	}

	s.HandleAnswer(c1, "Luis Figo")
	f := recvAs[GameFinishedMessage](t, c1, time.Second)
	if !f.Won || f.Points != 10 {
		t.Fatalf("retry should still win: %+v", f)
	}
}

func TestFirstCorrectAnswerWins(t *testing.T) {
	reg := testRegistry(t)
	s, c1, c2 := startHumanMatch(t, reg)

	s.HandleTeamSelected(c1, "Barcelona")
	s.HandleTeamSelected(c2, "Real Madrid")
	recvAs[GameStartedMessage](t, c2, time.Second)

	s.HandleAnswer(c2, "Dani Alves")
	s.HandleAnswer(c1, "Luis Figo") // loses the race, must be a no-op

	f1 := recvAs[GameFinishedMessage](t, c1, time.Second)
	f2 := recvAs[GameFinishedMessage](t, c2, time.Second)
	if !f2.Won || f1.Won {
		t.Fatalf("exactly the first submitter wins: %+v / %+v", f1, f2)
	}

	// The loser's late submission produced no second result.
	finished := 0
	for _, v := range c1.sent() {
		if _, ok := v.(GameFinishedMessage); ok {
			finished++
		}
	}
	if finished != 1 {
		t.Fatalf("expected exactly one result per slot, got %d", finished)
	}
}

func TestSelectionTimeoutAssignsDistinctTeams(t *testing.T) {
	reg := stubRegistry(t, testTiming())
	c1, c2 := newFakeConn(), newFakeConn()
	reg.StartSession(NewParticipant("", "Alice", c1), NewParticipant("", "Bob", c2))

	// Nobody selects; the timeout fills both slots, avoiding a duplicate.
	d1 := recvAs[TeamDisplayMessage](t, c1, time.Second)
	if d1.PlayerTeam == "" || d1.OpponentTeam == "" {
		t.Fatalf("timeout must assign both teams: %+v", d1)
	}
	if d1.PlayerTeam == d1.OpponentTeam {
		t.Fatalf("assigned teams should differ when possible: %+v", d1)
	}
}

func TestTeamSelectionIgnoredOutsidePhase(t *testing.T) {
	reg := testRegistry(t)
	s, c1, c2 := startHumanMatch(t, reg)

	s.HandleTeamSelected(c1, "Barcelona")
	s.HandleTeamSelected(c2, "Real Madrid")
	recvAs[TeamDisplayMessage](t, c1, time.Second)

	s.HandleTeamSelected(c1, "Liverpool")
	g := recvAs[GameStartedMessage](t, c1, time.Second)
	if !strings.Contains(g.QuestionText, "Barcelona vs Real Madrid") {
		t.Fatalf("late team change must be ignored: %q", g.QuestionText)
	}
}

func TestFinishedSessionIsUnreachable(t *testing.T) {
	reg := testRegistry(t)
	s, c1, c2 := startHumanMatch(t, reg)
	id := s.ID()

	s.HandleTeamSelected(c1, "Barcelona")
	s.HandleTeamSelected(c2, "Barcelona")
	recvAs[GameFinishedMessage](t, c1, time.Second)

	if got := reg.SessionByConn(c1); got != nil {
		t.Fatal("finished session still reachable by connection")
	}
	if _, err := reg.SessionByID(id); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	s.mu.Lock()
	if s.timer != nil || s.botTimer != nil {
		t.Fatal("finished session must hold no pending timers")
	}
	s.mu.Unlock()
}

func TestDisconnectedSlotStillGetsResolved(t *testing.T) {
	reg := testRegistry(t)
	s, c1, c2 := startHumanMatch(t, reg)

	// Slot B goes away mid-selection; the match still runs to completion
	// and slot A still gets its result.
	s.mu.Lock()
	s.slotB.Conn = nil
	s.mu.Unlock()

	s.HandleTeamSelected(c1, "Barcelona")
	f := recvAs[GameFinishedMessage](t, c1, 2*time.Second)
	if f.Type != "game_finished" {
		t.Fatalf("unexpected result payload: %+v", f)
	}
	_ = c2
	if reg.Len() != 0 {
		t.Fatalf("session should be gone, %d remain", reg.Len())
	}
}
