package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/transferduel/backend/internal/config"
	"github.com/transferduel/backend/internal/server"
)

const version = "1.0.0"

func main() {
	cfg := config.Default()
	cobra.CheckErr(newCmd(&cfg).Execute())
}

func newCmd(cfg *config.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TRANSFERDUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "transferduel",
		Short:         "Head-to-head football transfer trivia over WebSocket.",
		Args:          cobra.ExactArgs(0),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			zerolog.TimeFieldFormat = time.RFC3339
			cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
			level := zerolog.InfoLevel
			if cfg.Verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = log.Output(cw).Level(level)

			return server.Run(*cfg, log.Logger)
		},
	}

	fs := cmd.Flags()

	fs.StringVarP(&cfg.Bind, "bind", "b", cfg.Bind, "address to bind to (env: TRANSFERDUEL_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on (env: TRANSFERDUEL_PORT)")
	fs.DurationVar(&cfg.MatchWait, "match-wait", cfg.MatchWait, "wait before a lone player is matched with a bot (env: TRANSFERDUEL_MATCH_WAIT)")
	fs.DurationVar(&cfg.TeamSelectTimeout, "team-select-timeout", cfg.TeamSelectTimeout, "time budget for picking a club (env: TRANSFERDUEL_TEAM_SELECT_TIMEOUT)")
	fs.DurationVar(&cfg.TeamDisplayTimeout, "team-display-timeout", cfg.TeamDisplayTimeout, "time the matchup is shown before play (env: TRANSFERDUEL_TEAM_DISPLAY_TIMEOUT)")
	fs.DurationVar(&cfg.AnswerTimeout, "answer-timeout", cfg.AnswerTimeout, "time budget for answering (env: TRANSFERDUEL_ANSWER_TIMEOUT)")
	fs.DurationVar(&cfg.BotDelayMin, "bot-delay-min", cfg.BotDelayMin, "earliest bot answer (env: TRANSFERDUEL_BOT_DELAY_MIN)")
	fs.DurationVar(&cfg.BotDelayMax, "bot-delay-max", cfg.BotDelayMax, "latest bot answer (env: TRANSFERDUEL_BOT_DELAY_MAX)")
	fs.Float64Var(&cfg.BotAccuracy, "bot-accuracy", cfg.BotAccuracy, "probability the bot answers correctly (env: TRANSFERDUEL_BOT_ACCURACY)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging (env: TRANSFERDUEL_VERBOSE)")

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetVersionTemplate("transferduel v{{.Version}}\n")

	return cmd
}
