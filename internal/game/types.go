package game

import (
	"time"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseTeamSelection Phase = "team_selection"
	PhaseTeamDisplay   Phase = "team_display"
	PhasePlaying       Phase = "playing"
	PhaseFinished      Phase = "finished"
)

// Conn is the transport handle the orchestrator sends through. The ws layer
// implements it; synthetic opponents have none.
type Conn interface {
	Send(v any) error
}

// Participant is one of the two slots in a session. A nil Conn marks a
// synthetic opponent driven by the bot.
type Participant struct {
	ID   string
	Name string
	Conn Conn
}

func NewParticipant(id, name string, conn Conn) *Participant {
	if id == "" {
		id = uuid.NewString()
	}
	return &Participant{ID: id, Name: name, Conn: conn}
}

func (p *Participant) Synthetic() bool { return p.Conn == nil }

// send delivers v if the participant has a live connection. Send failures
// (closed or congested connections) are the caller's to log, not to act on:
// a session keeps running even when a slot has gone away.
func (p *Participant) send(v any) error {
	if p.Conn == nil {
		return nil
	}
	return p.Conn.Send(v)
}

// Question is fixed once Playing starts.
type Question struct {
	Teams             [2]string
	Prompt            string
	AcceptableAnswers []string
}

// ContentProvider supplies question material. internal/content implements
// it over its static tables.
type ContentProvider interface {
	AllTeams() []string
	AcceptableAnswers(teamA, teamB string) []string
	DecoyAnswers() []string
}

// Timing groups the per-phase budgets a session runs under.
type Timing struct {
	TeamSelect  time.Duration
	TeamDisplay time.Duration
	Answer      time.Duration
	BotDelayMin time.Duration
	BotDelayMax time.Duration
	BotAccuracy float64
}

const (
	winnerPoints = 10
	loserPoints  = -10
)
