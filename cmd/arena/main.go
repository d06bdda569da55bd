package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/archerduel/internal/ai"
	"github.com/udisondev/archerduel/internal/arena"
	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/config"
	"github.com/udisondev/archerduel/internal/db"
	"github.com/udisondev/archerduel/internal/match"
	"github.com/udisondev/archerduel/internal/model"
)

const ArenaConfigPath = "config/arena.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ArenaConfigPath
	if p := os.Getenv("ARCHERDUEL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadArena(cfgPath)
	if err != nil {
		return fmt.Errorf("loading arena config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	debug := logLevel == slog.LevelDebug
	ai.EnableDebugLogging(debug)
	combat.EnableDebugLogging(debug)
	arena.EnableDebugLogging(debug)

	slog.Info("archer duel starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"rounds", cfg.Rounds,
		"realtime", cfg.Realtime)

	var history *db.MatchRepository
	if cfg.Database.Enabled {
		connCtx, cancelConn := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		database, err := db.New(connCtx, cfg.Database.DSN())
		cancelConn()
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		history = database.Matches()
	}

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gctx)
	defer stopWatch()

	var updates <-chan config.Arena
	watcher, err := config.NewWatcher(cfgPath)
	if err != nil {
		slog.Warn("config hot reload disabled", "err", err)
	} else {
		updates = watcher.Updates()
		g.Go(func() error {
			if err := watcher.Run(watchCtx); err != nil {
				return fmt.Errorf("config watcher: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer stopWatch()
		return playRounds(gctx, cfg, updates, history)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("arena error: %w", err)
	}
	return nil
}

// playRounds runs cfg.Rounds duels back to back. A reloaded config takes effect
// at the next round boundary.
func playRounds(ctx context.Context, cfg config.Arena, updates <-chan config.Arena, history *db.MatchRepository) error {
	var wins [2]int

	for i := 0; i < cfg.Rounds; i++ {
		select {
		case next := <-updates:
			if next.Rounds != cfg.Rounds {
				slog.Info("round count changed", "from", cfg.Rounds, "to", next.Rounds)
			}
			cfg = next
			if i >= cfg.Rounds {
				return nil
			}
		default:
		}

		var pilot *match.AutoPilot
		r, err := match.NewRound(cfg, match.Options{
			Presenter: statePresenter{},
			Input: match.InputFunc(func(pc *combat.PlayerController, dt float64) {
				pilot.Drive(pc, dt)
			}),
		})
		if err != nil {
			return fmt.Errorf("creating round %d: %w", i+1, err)
		}
		pilot = match.NewAutoPilot(r.World().Handle(arena.SidePlayer), rand.New(rand.NewPCG(r.Seed(), uint64(i))))

		slog.Info("round started", "n", i+1, "round", r.ID(), "seed", r.Seed())

		res, err := r.Run(ctx)
		if errors.Is(err, context.Canceled) {
			slog.Info("round aborted", "round", r.ID())
			return nil
		}
		if err != nil {
			return fmt.Errorf("running round %d: %w", i+1, err)
		}
		wins[res.Winner]++

		if history != nil {
			if err := history.Save(ctx, res); err != nil {
				slog.Error("failed to save match", "round", res.ID, "err", err)
			}
		}
	}

	slog.Info("all rounds finished",
		"player_wins", wins[match.WinnerPlayer],
		"enemy_wins", wins[match.WinnerEnemy])
	return nil
}

// statePresenter logs every combat state transition.
type statePresenter struct{}

func (statePresenter) OnStateChanged(actorID string, state model.CombatState) {
	slog.Debug("state changed", "actor", actorID, "state", state)
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
