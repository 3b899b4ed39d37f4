package game

// Synthetic opponent driver. A bot slot never receives messages; instead
// its club choice is synthesized when the human picks (or on timeout), and
// during Playing it submits exactly one delayed answer.

// pickBotTeam chooses a club uniformly at random, excluding the opponent's
// choice when one exists so a bot match can always produce a question.
func pickBotTeam(rng *Rand, teams []string, exclude string) string {
	if exclude != "" {
		available := make([]string, 0, len(teams))
		for _, t := range teams {
			if t != exclude {
				available = append(available, t)
			}
		}
		if len(available) > 0 {
			teams = available
		}
	}
	return rng.Pick(teams)
}

// scheduleBotAnswerLocked arms the bot's single submission at a random
// delay inside the answer window. The answer itself is drawn when the timer
// fires: correct with the configured probability, otherwise a decoy. The
// phase guard makes a fire after the match ended a no-op, and finishLocked
// cancels the timer outright.
func (s *Session) scheduleBotAnswerLocked(bot *Participant) {
	delay := s.reg.rng.Between(s.reg.timing.BotDelayMin, s.reg.timing.BotDelayMax)
	s.botTimer = s.afterPhase(delay, PhasePlaying, func() {
		var answer string
		if s.reg.rng.Float64() < s.reg.timing.BotAccuracy {
			answer = s.reg.rng.Pick(s.question.AcceptableAnswers)
		} else {
			answer = s.reg.rng.Pick(s.reg.content.DecoyAnswers())
		}
		s.log.Info().Str("player", bot.Name).Str("answer", answer).Msg("bot answering")
		s.submitLocked(bot, answer)
	})
}
