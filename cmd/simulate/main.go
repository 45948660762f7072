package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/dicecrawl/internal/combatlog"
	"github.com/udisondev/dicecrawl/internal/config"
	"github.com/udisondev/dicecrawl/internal/data"
	"github.com/udisondev/dicecrawl/internal/db"
	"github.com/udisondev/dicecrawl/internal/game/combat"
	"github.com/udisondev/dicecrawl/internal/random"
	"github.com/udisondev/dicecrawl/internal/sim"
)

const ConfigPath = "config/dicecrawl.yaml"

// Очередь combat log рассчитана на пачку коротких прогонов без потерь.
const logQueueSize = 16 * combatlog.DefaultQueueSize

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
	cfgPath := ConfigPath
	if p := os.Getenv("DICECRAWL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	if err := data.LoadEnemyTemplates(); err != nil {
		return fmt.Errorf("loading enemy templates: %w", err)
	}
	if err := data.LoadCards(); err != nil {
		return fmt.Errorf("loading cards: %w", err)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return fmt.Errorf("generating seed: %w", err)
		}
	}

	opts := sim.Options{
		Runs:    cfg.Simulation.Runs,
		Workers: cfg.Simulation.Workers,
		Seed:    seed,
		Deck:    cfg.Simulation.Deck,
		Rules:   cfg.Combat,
	}

	// Paced mode plays a single run in real time with every event logged.
	if cfg.Simulation.Paced {
		opts.Runs = 1
		opts.Workers = 1
		opts.Pacer = combat.NewDelayPacer(cfg.Pacing)
	}

	var writer *combatlog.Writer
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		writer = combatlog.NewWriter(database.Battles(), logQueueSize)
	}

	opts.NewSink = newSinkFactory(writer, cfg.Simulation.Paced)

	runner, err := sim.NewRunner(opts)
	if err != nil {
		return fmt.Errorf("creating simulator: %w", err)
	}

	slog.Info("simulation starting",
		"runs", opts.Runs,
		"workers", opts.Workers,
		"seed", seed,
		"deck", opts.Deck,
		"paced", cfg.Simulation.Paced,
		"combat_log", writer != nil)

	g, gctx := errgroup.WithContext(ctx)
	if writer != nil {
		g.Go(func() error {
			writer.Run(gctx)
			return nil
		})
	}

	var results []sim.Result
	start := time.Now()
	g.Go(func() error {
		// Writer.Run завершается только после Close, поэтому закрываем очередь здесь.
		if writer != nil {
			defer writer.Close()
		}
		var err error
		results, err = runner.RunMany(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logSummary(sim.Summarize(results), time.Since(start))
	if writer != nil {
		saved, failed, dropped := writer.Stats()
		slog.Info("combat log flushed", "saved", saved, "failed", failed, "dropped", dropped)
	}

	return nil
}

// newSinkFactory builds per-run event sinks: a combat log recorder when the
// database is enabled, and a text log of every event in paced mode.
func newSinkFactory(writer *combatlog.Writer, paced bool) func(int, int64) combat.Sink {
	if writer == nil && !paced {
		return nil
	}
	return func(index int, seed int64) combat.Sink {
		var sinks combat.MultiSink
		if writer != nil {
			sinks = append(sinks, combatlog.NewRecorder(seed, writer.Record))
		}
		if paced {
			sinks = append(sinks, combat.NewLogSink(slog.Default().With("run", index)))
		}
		return sinks
	}
}

func logSummary(s sim.Summary, elapsed time.Duration) {
	slog.Info("simulation finished",
		"runs", s.Runs,
		"wins", s.Wins,
		"win_rate", fmt.Sprintf("%.1f%%", s.WinRate*100),
		"avg_floor", fmt.Sprintf("%.2f", s.AvgFloor),
		"max_floor", s.MaxFloor,
		"avg_experience", fmt.Sprintf("%.1f", s.AvgExperience),
		"avg_level", fmt.Sprintf("%.2f", s.AvgLevel),
		"avg_actions", fmt.Sprintf("%.1f", s.AvgActions),
		"avg_win_hp", fmt.Sprintf("%.0f%%", s.AvgWinHP*100),
		"fled", s.Fled,
		"elapsed", elapsed.Round(time.Millisecond))

	for _, id := range s.DeadliestEnemies() {
		slog.Info("deaths", "enemy", id, "runs", s.Deaths[id])
	}
	for item, count := range s.Loot {
		slog.Debug("loot", "item", item, "count", count)
	}
}

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
