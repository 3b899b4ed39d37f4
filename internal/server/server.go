// Package server wires the orchestrator, content tables, and transport
// into one HTTP server.
package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/transferduel/backend/internal/config"
	"github.com/transferduel/backend/internal/content"
	"github.com/transferduel/backend/internal/game"
	"github.com/transferduel/backend/internal/ws"
)

func Run(cfg config.Config, logger zerolog.Logger) error {
	provider := content.NewProvider()
	timing := game.Timing{
		TeamSelect:  cfg.TeamSelectTimeout,
		TeamDisplay: cfg.TeamDisplayTimeout,
		Answer:      cfg.AnswerTimeout,
		BotDelayMin: cfg.BotDelayMin,
		BotDelayMax: cfg.BotDelayMax,
		BotAccuracy: cfg.BotAccuracy,
	}
	registry := game.NewRegistry(provider, timing, game.NewTimeRand(), logger)
	queue := game.NewQueue(registry, cfg.MatchWait, logger)
	handler := ws.NewHandler(queue, registry, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		// The websocket endpoint holds its request open for the whole
		// session; logging it here is just noise.
		if strings.HasPrefix(path, "/ws") {
			return
		}
		logger.Info().
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("http")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":      true,
			"time":    time.Now().UTC(),
			"matches": registry.Len(),
			"waiting": queue.Len(),
		})
	})

	// The team-select screen fetches the selectable clubs and their
	// best-known players from here.
	r.GET("/api/teams", func(c *gin.Context) {
		teams := provider.AllTeams()
		rosters := make(map[string][]string, len(teams))
		for _, t := range teams {
			rosters[t] = provider.TeamRoster(t)
		}
		c.JSON(http.StatusOK, gin.H{"teams": teams, "rosters": rosters})
	})

	r.GET("/ws", handler.Handle)

	addr := net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.Port))
	logger.Info().Str("addr", addr).Msg("listening")
	return r.Run(addr)
}
