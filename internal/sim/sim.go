// Package sim plays complete dungeon runs headlessly to measure balance.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/dicecrawl/internal/config"
	"github.com/udisondev/dicecrawl/internal/data"
	"github.com/udisondev/dicecrawl/internal/game/combat"
	"github.com/udisondev/dicecrawl/internal/game/run"
	"github.com/udisondev/dicecrawl/internal/model"
	"github.com/udisondev/dicecrawl/internal/random"
)

// DefaultMaxActions caps player actions in one combat; the player flees
// once it is reached so that stalemates cannot hang a run.
const DefaultMaxActions = 200

// ErrEmptyDeck is returned by NewRunner for a deck without cards.
var ErrEmptyDeck = errors.New("deck is empty")

// Options configures a Runner.
type Options struct {
	Runs       int
	Workers    int
	Seed       int64    // master seed; per-run seeds are derived from it
	Deck       []string // card IDs played round-robin
	Rules      config.Combat
	MaxActions int // 0 → DefaultMaxActions

	// NewSink, if set, builds an extra sink for the run with the given
	// index and seed (e.g. a combatlog.Recorder).
	NewSink func(index int, seed int64) combat.Sink

	// Pacer is used for every session; nil means combat.NoDelay.
	Pacer combat.Pacer
}

// Result is the outcome of one simulated run.
type Result struct {
	Index      int
	Seed       int64
	Won        bool
	Floor      int
	Encounters int
	Victories  int
	Fled       int
	Actions    int
	Experience int
	Level      int
	HPLeft     float64 // player HP fraction at the end of the run
	Loot       map[string]int
	KilledBy   string // enemy ID that ended a lost run
}

// Runner plays runs with a fixed card policy.
type Runner struct {
	opts    Options
	actions []combat.Action
}

// NewRunner resolves the deck into actions. data.LoadEnemyTemplates and
// data.LoadCards must have been called.
func NewRunner(opts Options) (*Runner, error) {
	if len(opts.Deck) == 0 {
		return nil, ErrEmptyDeck
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxActions <= 0 {
		opts.MaxActions = DefaultMaxActions
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	actions := make([]combat.Action, 0, len(opts.Deck))
	for _, id := range opts.Deck {
		a, err := data.CardAction(id)
		if err != nil {
			return nil, fmt.Errorf("deck: %w", err)
		}
		actions = append(actions, a)
	}

	return &Runner{opts: opts, actions: actions}, nil
}

// RunOne plays the run with the given index. The same index and master seed
// always produce the same result.
func (r *Runner) RunOne(ctx context.Context, index int) (Result, error) {
	seed := random.DeriveSeed(r.opts.Seed, index)
	src := random.NewSource(seed)

	hero, err := data.NewHero()
	if err != nil {
		return Result{}, fmt.Errorf("creating hero: %w", err)
	}

	var sink combat.Sink
	if r.opts.NewSink != nil {
		sink = r.opts.NewSink(index, seed)
	}

	rules := r.opts.Rules
	game := run.New(hero, &rules, src, sink)
	if r.opts.Pacer != nil {
		game.SetPacer(r.opts.Pacer)
	}

	res := Result{Index: index, Seed: seed}
	next := 0 // round-robin position in the deck

	for !game.Over() {
		floor := game.Floor()

		regular := data.EnemiesForFloor(floor)
		if len(regular) == 0 {
			return res, fmt.Errorf("no enemies for floor %d", floor)
		}
		lineup := []string{regular[src.IntN(len(regular))].ID()}
		if boss := data.BossForFloor(floor); boss != nil {
			lineup = append(lineup, boss.ID())
		}

		for _, enemyID := range lineup {
			enemy, err := data.NewEnemy(enemyID)
			if err != nil {
				return res, err
			}

			outcome, actions, err := r.fight(ctx, game, enemy, &next)
			res.Actions += actions
			if err != nil {
				return res, fmt.Errorf("run %d floor %d vs %s: %w", index, floor, enemyID, err)
			}
			switch outcome {
			case combat.OutcomeFled:
				res.Fled++
			case combat.OutcomeDefeat:
				res.KilledBy = enemyID
			}
			if game.Over() {
				break
			}
		}
		if game.Over() {
			break
		}

		if _, err := game.AdvanceFloor(); err != nil {
			return res, fmt.Errorf("run %d: %w", index, err)
		}
	}

	res.Won = game.Won()
	res.Floor = game.Floor()
	res.Encounters = game.Encounters()
	res.Victories = game.Victories()
	res.Experience = game.Experience()
	res.Level = game.Level()
	res.HPLeft = game.Player().HPPercentage()
	res.Loot = game.Loot()
	return res, nil
}

// fight plays one combat to its end and returns its outcome.
func (r *Runner) fight(ctx context.Context, game *run.Run, enemy *model.Combatant, next *int) (combat.Outcome, int, error) {
	s, err := game.Encounter(ctx, enemy)
	if err != nil {
		return combat.OutcomeNone, 0, err
	}

	actions := 0
	for !s.State().Terminal() {
		if actions >= r.opts.MaxActions {
			slog.Debug("stalemate, fleeing", "enemy", enemy.ID(), "actions", actions)
			if err := game.Flee(); err != nil {
				return s.Outcome(), actions, err
			}
			break
		}

		action := r.actions[*next%len(r.actions)]
		*next++
		actions++

		if err := game.PlayAction(ctx, action); err != nil {
			return s.Outcome(), actions, err
		}
	}

	return s.Outcome(), actions, nil
}

// RunMany plays opts.Runs runs on at most opts.Workers goroutines.
// Results are ordered by run index.
func (r *Runner) RunMany(ctx context.Context) ([]Result, error) {
	results := make([]Result, r.opts.Runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i := range r.opts.Runs {
		g.Go(func() error {
			res, err := r.RunOne(gctx, i)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	return results, nil
}
