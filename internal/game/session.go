package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	ReasonSameTeams = "same teams selected"
	ReasonNoAnswers = "no transfer players available"

	promptFormat = "Name a player who has played for both clubs"
)

// Session is one match between two participants. It moves through
// TeamSelection -> TeamDisplay -> Playing -> Finished, driven by inbound
// messages and by its own phase timer. All mutation happens under mu, so
// the two slots can never interleave mid-transition. Timer callbacks
// re-check the phase they were armed for before acting; a timer that lost
// the race against a transition is a no-op.
type Session struct {
	id  string
	reg *Registry
	log zerolog.Logger

	mu    sync.Mutex
	phase Phase

	slotA *Participant
	slotB *Participant
	selA  string
	selB  string

	question *Question
	timer    *time.Timer // the single pending phase timer
	botTimer *time.Timer // scheduled synthetic answer, Playing only
}

func newSession(reg *Registry, slotA, slotB *Participant) *Session {
	id := uuid.NewString()
	return &Session{
		id:    id,
		reg:   reg,
		log:   reg.log.With().Str("game", id).Logger(),
		phase: PhaseTeamSelection,
		slotA: slotA,
		slotB: slotB,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// begin announces the match and starts the team selection clock.
func (s *Session) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := s.reg.timing.TeamSelect.Milliseconds()
	s.sendTo(s.slotA, MatchFoundMessage{
		Type: "match_found", GameID: s.id, Opponent: s.slotB.Name,
		Phase: PhaseTeamSelection, TimeLimit: limit,
	})
	s.sendTo(s.slotB, MatchFoundMessage{
		Type: "match_found", GameID: s.id, Opponent: s.slotA.Name,
		Phase: PhaseTeamSelection, TimeLimit: limit,
	})

	s.timer = s.afterPhase(s.reg.timing.TeamSelect, PhaseTeamSelection, s.selectionTimeoutLocked)
}

// afterPhase arms a timer whose callback only runs if the session is still
// in the phase it was armed for.
func (s *Session) afterPhase(d time.Duration, armed Phase, fn func()) *time.Timer {
	return time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.phase != armed {
			return
		}
		fn()
	})
}

func (s *Session) participantFor(c Conn) *Participant {
	if s.slotA.Conn == c {
		return s.slotA
	}
	if s.slotB.Conn == c {
		return s.slotB
	}
	return nil
}

func (s *Session) opponentOf(p *Participant) *Participant {
	if p == s.slotA {
		return s.slotB
	}
	return s.slotA
}

func (s *Session) selectionOf(p *Participant) *string {
	if p == s.slotA {
		return &s.selA
	}
	return &s.selB
}

// HandleTeamSelected records a slot's club choice. When the opponent is a
// bot it picks its own club immediately, biased away from the human's.
// Once both slots hold a selection the phase advances early.
func (s *Session) HandleTeamSelected(c Conn, team string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseTeamSelection {
		s.log.Debug().Str("phase", string(s.phase)).Msg("team_selected outside selection phase, dropped")
		return
	}
	p := s.participantFor(c)
	if p == nil {
		return
	}

	*s.selectionOf(p) = team
	s.log.Info().Str("player", p.Name).Str("team", team).Msg("team selected")
	s.sendTo(p, TeamSelectedConfirmMessage{Type: "team_selected_confirm", Team: team})

	if opp := s.opponentOf(p); opp.Synthetic() && *s.selectionOf(opp) == "" {
		botTeam := pickBotTeam(s.reg.rng, s.reg.content.AllTeams(), team)
		*s.selectionOf(opp) = botTeam
		s.log.Info().Str("player", opp.Name).Str("team", botTeam).Msg("bot selected team")
	}

	if s.selA != "" && s.selB != "" {
		if s.timer != nil {
			s.timer.Stop()
		}
		s.startTeamDisplayLocked()
	}
}

// selectionTimeoutLocked fills any missing selection at random, avoiding a
// duplicate where the other slot has already chosen, then advances.
func (s *Session) selectionTimeoutLocked() {
	if s.selA == "" {
		s.selA = pickBotTeam(s.reg.rng, s.reg.content.AllTeams(), s.selB)
	}
	if s.selB == "" {
		s.selB = pickBotTeam(s.reg.rng, s.reg.content.AllTeams(), s.selA)
	}
	s.log.Info().Str("teamA", s.selA).Str("teamB", s.selB).Msg("selection timed out, teams assigned")
	s.startTeamDisplayLocked()
}

func (s *Session) startTeamDisplayLocked() {
	s.phase = PhaseTeamDisplay
	limit := s.reg.timing.TeamDisplay.Milliseconds()
	s.sendTo(s.slotA, TeamDisplayMessage{
		Type: "team_display", PlayerTeam: s.selA, OpponentTeam: s.selB, TimeLimit: limit,
	})
	s.sendTo(s.slotB, TeamDisplayMessage{
		Type: "team_display", PlayerTeam: s.selB, OpponentTeam: s.selA, TimeLimit: limit,
	})
	s.timer = s.afterPhase(s.reg.timing.TeamDisplay, PhaseTeamDisplay, s.startPlayingLocked)
}

// startPlayingLocked resolves the question. Identical clubs or an unknown
// pairing cannot produce one, in which case the match ends drawn with the
// reason attached instead of a winner.
func (s *Session) startPlayingLocked() {
	s.phase = PhasePlaying

	if s.selA == s.selB {
		s.finishLocked(nil, ReasonSameTeams)
		return
	}
	answers := s.reg.content.AcceptableAnswers(s.selA, s.selB)
	if len(answers) == 0 {
		s.finishLocked(nil, ReasonNoAnswers)
		return
	}

	s.question = &Question{
		Teams:             [2]string{s.selA, s.selB},
		Prompt:            fmt.Sprintf("%s:\n%s vs %s", promptFormat, s.selA, s.selB),
		AcceptableAnswers: answers,
	}

	limit := s.reg.timing.Answer.Milliseconds()
	msg := GameStartedMessage{
		Type: "game_started", QuestionText: s.question.Prompt,
		Teams: s.question.Teams, TimeLimit: limit,
	}
	s.sendTo(s.slotA, msg)
	s.sendTo(s.slotB, msg)

	if s.slotA.Synthetic() {
		s.scheduleBotAnswerLocked(s.slotA)
	}
	if s.slotB.Synthetic() {
		s.scheduleBotAnswerLocked(s.slotB)
	}

	s.log.Info().Strs("answers", answers).Msg("question started")
	s.timer = s.afterPhase(s.reg.timing.Answer, PhasePlaying, func() {
		s.log.Info().Msg("no correct answer in time, draw")
		s.finishLocked(nil, "")
	})
}

// HandleAnswer adjudicates a submission. The first correct answer wins the
// match outright; wrong answers get a private retry notice and the clock
// keeps running. Anything arriving outside Playing is expected noise (a
// loser's near-simultaneous answer, a very late retry) and is dropped.
func (s *Session) HandleAnswer(c Conn, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.participantFor(c)
	if p == nil {
		return
	}
	s.submitLocked(p, answer)
}

func (s *Session) submitLocked(p *Participant, answer string) {
	if s.phase != PhasePlaying {
		s.log.Debug().Str("player", p.Name).Str("phase", string(s.phase)).Msg("answer outside playing phase, dropped")
		return
	}

	if !IsCorrect(answer, s.question.AcceptableAnswers) {
		s.log.Info().Str("player", p.Name).Str("answer", answer).Msg("wrong answer")
		s.sendTo(p, WrongAnswerMessage{Type: "wrong_answer", Message: "Wrong answer! Try again."})
		return
	}

	s.log.Info().Str("player", p.Name).Str("answer", answer).Msg("correct answer, match won")
	if s.timer != nil {
		s.timer.Stop()
	}
	s.finishLocked(p, "")
}

// finishLocked is the only way into the terminal phase: it cancels whatever
// is still scheduled, delivers mirrored results, and removes the session
// from the registry so no further message can reach it.
func (s *Session) finishLocked(winner *Participant, reason string) {
	s.phase = PhaseFinished
	s.question = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.botTimer != nil {
		s.botTimer.Stop()
		s.botTimer = nil
	}

	winnerName := ""
	if winner != nil {
		winnerName = winner.Name
	}

	s.sendTo(s.slotA, s.resultFor(s.slotA, winner, winnerName, reason))
	s.sendTo(s.slotB, s.resultFor(s.slotB, winner, winnerName, reason))

	s.reg.remove(s)
	s.log.Info().Str("winner", winnerName).Str("reason", reason).Msg("match finished")
}

func (s *Session) resultFor(p, winner *Participant, winnerName, reason string) GameFinishedMessage {
	opp := s.opponentOf(p)
	points := 0
	if winner != nil {
		if winner == p {
			points = winnerPoints
		} else {
			points = loserPoints
		}
	}
	return GameFinishedMessage{
		Type:         "game_finished",
		Winner:       winnerName,
		Won:          winner == p,
		Points:       points,
		Reason:       reason,
		QuestionText: fmt.Sprintf("%s: %s vs %s", promptFormat, *s.selectionOf(p), *s.selectionOf(opp)),
		PlayerTeam:   *s.selectionOf(p),
		OpponentTeam: *s.selectionOf(opp),
		PlayerName:   p.Name,
		OpponentName: opp.Name,
	}
}

func (s *Session) sendTo(p *Participant, v any) {
	if err := p.send(v); err != nil {
		s.log.Warn().Err(err).Str("player", p.Name).Msg("send failed")
	}
}
