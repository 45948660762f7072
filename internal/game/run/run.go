// Package run holds the state of one dungeon run: the player, the single
// active combat session, accumulated rewards and floor progress.
package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/udisondev/dicecrawl/internal/config"
	"github.com/udisondev/dicecrawl/internal/data"
	"github.com/udisondev/dicecrawl/internal/game/combat"
	"github.com/udisondev/dicecrawl/internal/game/dice"
	"github.com/udisondev/dicecrawl/internal/model"
)

var (
	// ErrCombatActive is returned when an encounter would start while another
	// combat is still running.
	ErrCombatActive = errors.New("combat already active")

	// ErrNoCombat - нет активного боя.
	ErrNoCombat = errors.New("no active combat")

	// ErrRunOver is returned for any progress after the run was won or lost.
	ErrRunOver = errors.New("run is over")
)

// Run is the owning game state of a dungeon run.
//
// Only one combat session may be active at a time. Run never calls into the
// session while holding its own lock: the session reports back through the
// sink under its lock, and the active slot is cleared from there.
type Run struct {
	mu sync.Mutex

	player *model.Combatant
	rules  *config.Combat
	src    dice.Source
	sink   combat.Sink
	pacer  combat.Pacer

	active *combat.Session

	floor      int
	experience int
	level      int
	loot       map[string]int
	victories  int
	encounters int

	over bool
	won  bool
}

// New creates a run on floor 1. rules nil means config.DefaultCombat();
// sink may be nil.
func New(player *model.Combatant, rules *config.Combat, src dice.Source, sink combat.Sink) *Run {
	if rules == nil {
		def := config.DefaultCombat()
		rules = &def
	}
	return &Run{
		player: player,
		rules:  rules,
		src:    src,
		sink:   sink,
		pacer:  combat.NoDelay,
		floor:  1,
		level:  1,
		loot:   make(map[string]int),
	}
}

// SetPacer sets the pacer used by sessions created after the call.
func (r *Run) SetPacer(p combat.Pacer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p == nil {
		p = combat.NoDelay
	}
	r.pacer = p
}

// Encounter starts combat against enemy and returns the new active session.
func (r *Run) Encounter(ctx context.Context, enemy *model.Combatant) (*combat.Session, error) {
	r.mu.Lock()
	if r.over {
		r.mu.Unlock()
		return nil, ErrRunOver
	}
	if r.active != nil {
		r.mu.Unlock()
		return nil, ErrCombatActive
	}

	s := combat.NewSession(combat.MultiSink{combat.SinkFunc(r.onEvent), r.sink}, r.src, r.rules)
	s.SetPacer(r.pacer)
	r.active = s
	r.encounters++
	floor := r.floor
	r.mu.Unlock()

	if err := s.Initiate(ctx, r.player, enemy); err != nil {
		r.mu.Lock()
		if r.active == s {
			r.active = nil
		}
		if errors.Is(err, combat.ErrInvalidTarget) {
			r.encounters--
		}
		r.mu.Unlock()
		return nil, fmt.Errorf("encounter on floor %d: %w", floor, err)
	}

	slog.Debug("encounter started", "floor", floor, "enemy", enemy.ID(), "boss", enemy.IsBoss())
	return s, nil
}

// PlayAction forwards a player action to the active session.
func (r *Run) PlayAction(ctx context.Context, action combat.Action) error {
	s, err := r.running()
	if err != nil {
		return err
	}
	return s.PlayAction(ctx, action)
}

// Flee aborts the active combat.
func (r *Run) Flee() error {
	s, err := r.running()
	if err != nil {
		return err
	}
	return s.Abort()
}

// AdvanceFloor moves the player to the next floor and restores
// rules.FloorHeal of their max HP. Leaving the victory floor wins the run;
// the return value reports that.
func (r *Run) AdvanceFloor() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.over {
		return false, ErrRunOver
	}
	if r.active != nil {
		return false, ErrCombatActive
	}

	if r.floor >= r.rules.VictoryFloor {
		r.over = true
		r.won = true
		slog.Info("run won",
			"floors", r.floor,
			"experience", r.experience,
			"victories", r.victories)
		return true, nil
	}

	r.floor++
	heal := int(float64(r.player.MaxHP()) * r.rules.FloorHeal)
	r.player.SetCurrentHP(r.player.CurrentHP() + heal)

	slog.Debug("floor advanced", "floor", r.floor, "hp", r.player.CurrentHP())
	return false, nil
}

// Active returns the session in progress, or nil.
func (r *Run) Active() *combat.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Player returns the run's player combatant.
func (r *Run) Player() *model.Combatant { return r.player }

// Experience returns the experience collected so far.
func (r *Run) Experience() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.experience
}

// Level returns the player's level derived from collected experience.
func (r *Run) Level() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// Loot returns a copy of collected items (itemID → count).
func (r *Run) Loot() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.loot)
}

// Floor returns the current floor (1-based).
func (r *Run) Floor() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.floor
}

// Victories returns how many combats were won.
func (r *Run) Victories() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.victories
}

// Encounters returns how many combats were started.
func (r *Run) Encounters() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.encounters
}

// Over reports whether the run ended (won or lost).
func (r *Run) Over() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.over
}

// Won reports whether the run ended in victory.
func (r *Run) Won() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.won
}

func (r *Run) running() (*combat.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return nil, ErrNoCombat
	}
	return r.active, nil
}

// onEvent releases the active slot and collects rewards. Called by the
// session under its lock.
func (r *Run) onEvent(e combat.Event) {
	ended, ok := e.(combat.CombatEnded)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = nil
	switch ended.Outcome {
	case combat.OutcomeVictory:
		r.victories++
		r.experience += ended.Experience
		if lvl := data.GetLevelForExp(r.experience, r.level); lvl > r.level {
			slog.Info("level up", "player", r.player.ID(), "level", lvl, "experience", r.experience)
			r.level = lvl
		}
		if ended.Loot != nil {
			r.loot[ended.Loot.ItemID] += ended.Loot.Count
		}
	case combat.OutcomeDefeat:
		r.over = true
		slog.Info("run lost",
			"floor", r.floor,
			"experience", r.experience,
			"victories", r.victories)
	}
}
