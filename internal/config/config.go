package config

import (
	"fmt"
	"time"
)

// Config carries everything the server needs at startup. Flags and
// TRANSFERDUEL_* env vars populate it in cmd/server.
type Config struct {
	Bind    string
	Port    int
	Verbose bool

	// Matchmaking
	MatchWait time.Duration // how long a lone player waits before a bot steps in

	// Phase timers
	TeamSelectTimeout  time.Duration
	TeamDisplayTimeout time.Duration
	AnswerTimeout      time.Duration

	// Synthetic opponent behavior
	BotDelayMin time.Duration
	BotDelayMax time.Duration
	BotAccuracy float64 // probability the bot's answer is drawn from the acceptable set
}

func Default() Config {
	return Config{
		Bind:               "0.0.0.0",
		Port:               8080,
		MatchWait:          5 * time.Second,
		TeamSelectTimeout:  10 * time.Second,
		TeamDisplayTimeout: 3 * time.Second,
		AnswerTimeout:      30 * time.Second,
		BotDelayMin:        2 * time.Second,
		BotDelayMax:        27 * time.Second,
		BotAccuracy:        0.7,
	}
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"match-wait", c.MatchWait},
		{"team-select-timeout", c.TeamSelectTimeout},
		{"team-display-timeout", c.TeamDisplayTimeout},
		{"answer-timeout", c.AnswerTimeout},
	} {
		if d.val <= 0 {
			return fmt.Errorf("--%s must be positive, got %v", d.name, d.val)
		}
	}
	if c.BotDelayMin <= 0 || c.BotDelayMax <= c.BotDelayMin {
		return fmt.Errorf("bot delay window [%v, %v) is empty", c.BotDelayMin, c.BotDelayMax)
	}
	if c.BotDelayMax >= c.AnswerTimeout {
		return fmt.Errorf("--bot-delay-max (%v) must be below --answer-timeout (%v)", c.BotDelayMax, c.AnswerTimeout)
	}
	if c.BotAccuracy < 0 || c.BotAccuracy > 1 {
		return fmt.Errorf("--bot-accuracy must be within [0, 1], got %v", c.BotAccuracy)
	}
	return nil
}
