// Package combat implements turn-based combat resolution: damage computation,
// loot and the session state machine that sequences player and enemy turns.
package combat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/dicecrawl/internal/config"
	"github.com/udisondev/dicecrawl/internal/game/dice"
	"github.com/udisondev/dicecrawl/internal/game/modifier"
	"github.com/udisondev/dicecrawl/internal/model"
)

var (
	// ErrIllegalStateTransition - действие подано не в своём состоянии сессии.
	ErrIllegalStateTransition = errors.New("illegal state transition")

	// ErrInvalidTarget indicates a missing or already defeated combatant.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrAborted is returned by a call whose in-flight step was pre-empted by
	// Abort. Any action whose TurnResult was not yet emitted is discarded.
	ErrAborted = errors.New("combat aborted")
)

// Session is the combat state machine for one player against one enemy.
//
// A session is single use: it starts Idle, is initiated once and ends in
// Ended with an Outcome. Turn resolution is strictly serial. The mutex only
// exists so that Abort may arrive from another goroutine (e.g. a flee button)
// while a step is suspended in the Pacer.
type Session struct {
	mu sync.Mutex

	state   State
	outcome Outcome
	turn    int

	player *model.Combatant
	enemy  *model.Combatant

	roller   *dice.Roller
	pipeline *modifier.Pipeline
	rules    *config.Combat

	sink  Sink
	pacer Pacer

	// abortCtx is cancelled when the session ends for any reason; it
	// pre-empts whatever step is suspended in the pacer.
	abortCtx context.Context
	cancel   context.CancelFunc
}

// NewSession creates an Idle session.
// sink receives all events, src drives every dice roll and loot roll,
// rules carries balance constants (nil means config.DefaultCombat()).
func NewSession(sink Sink, src dice.Source, rules *config.Combat) *Session {
	if sink == nil {
		sink = Discard
	}
	if rules == nil {
		def := config.DefaultCombat()
		rules = &def
	}
	roller := dice.NewRoller(src)
	abortCtx, cancel := context.WithCancel(context.Background())

	return &Session{
		state:    StateIdle,
		roller:   roller,
		pipeline: modifier.NewPipeline(roller),
		rules:    rules,
		sink:     sink,
		pacer:    NoDelay,
		abortCtx: abortCtx,
		cancel:   cancel,
	}
}

// SetPacer sets how suspension points are executed (NoDelay by default).
// Must be called before Initiate.
func (s *Session) SetPacer(p Pacer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		p = NoDelay
	}
	s.pacer = p
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Outcome returns how the session ended (OutcomeNone while running).
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Turn returns the current round number (1-based once started).
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Player returns the attacker combatant (nil before Initiate).
func (s *Session) Player() *model.Combatant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

// Enemy returns the defender combatant (nil before Initiate).
func (s *Session) Enemy() *model.Combatant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enemy
}

// Done returns a channel closed when the session reaches Ended.
func (s *Session) Done() <-chan struct{} {
	return s.abortCtx.Done()
}

// Initiate starts combat: Idle → Starting, emits CombatStarted, runs the
// intro step, then enters PlayerTurn.
func (s *Session) Initiate(ctx context.Context, attacker, defender *model.Combatant) error {
	s.mu.Lock()
	if s.state != StateIdle {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("initiate in state %s: %w", state, ErrIllegalStateTransition)
	}
	if err := ValidateParticipants(attacker, defender); err != nil {
		s.mu.Unlock()
		return err
	}

	s.player = attacker
	s.enemy = defender
	s.state = StateStarting
	s.emit(CombatStarted{AttackerID: attacker.ID(), DefenderID: defender.ID(), BossFight: defender.IsBoss()})
	s.mu.Unlock()

	slog.Debug("combat initiated",
		"attacker", attacker.ID(),
		"defender", defender.ID(),
		"boss", defender.IsBoss())

	if err := s.pause(ctx, Beat{Step: StepIntro, ActorID: attacker.ID(), TargetID: defender.ID()}); err != nil {
		return s.interrupt(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateStarting {
		return ErrAborted
	}
	s.state = StatePlayerTurn
	s.turn = 1
	return nil
}

// PlayAction resolves a player action against the enemy.
//
// Workflow:
//  1. Reject unless in PlayerTurn with a live enemy and a valid action
//  2. Roll → modifiers → damage, run dice/damage(/defeat) steps
//  3. Commit: apply damage, emit TurnResult
//  4. Enemy defeated → Ended(Victory) with rewards; otherwise the enemy turn
//     auto-resolves before PlayAction returns
//
// Rejected calls change nothing and emit nothing. ErrAborted means the
// player's action was discarded. An Abort that lands during the enemy turn,
// after the player's hit was committed, ends the session as Fled and
// PlayAction returns nil. A cancelled ctx or a pacer failure during the
// enemy turn is still returned wrapped in ErrAborted.
func (s *Session) PlayAction(ctx context.Context, action Action) error {
	s.mu.Lock()
	if s.state != StatePlayerTurn {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("play action in state %s: %w", state, ErrIllegalStateTransition)
	}
	if err := ValidateTarget(s.enemy); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := action.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = StateResolvingPlayerAction
	player, enemy := s.player, s.enemy
	s.mu.Unlock()

	res, err := s.resolve(ctx, StateResolvingPlayerAction, player, enemy, action)
	if err != nil {
		return err
	}
	if res.TargetDefeated {
		return nil
	}

	// Ход игрока уже применён: голый ErrAborted здесь означает внешний Abort.
	if err := s.enemyTurn(ctx); err != nil && err != ErrAborted { //nolint:errorlint
		return err
	}
	return nil
}

// Abort ends a running session as Fled. Any action being resolved is
// discarded without damage or TurnResult. Valid from every state except
// Idle and Ended.
func (s *Session) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateIdle || s.state.Terminal() {
		return fmt.Errorf("abort in state %s: %w", s.state, ErrIllegalStateTransition)
	}

	slog.Debug("combat aborted", "state", s.state.String(), "turn", s.turn)
	s.finishLocked(OutcomeFled)
	return nil
}

// enemyTurn runs the fixed enemy policy: attack if able, otherwise skip.
func (s *Session) enemyTurn(ctx context.Context) error {
	s.mu.Lock()
	player, enemy := s.player, s.enemy
	s.mu.Unlock()

	if err := s.pause(ctx, Beat{Step: StepTurnStart, ActorID: enemy.ID(), TargetID: player.ID()}); err != nil {
		return s.interrupt(err)
	}

	s.mu.Lock()
	if s.state != StateEnemyTurn {
		s.mu.Unlock()
		return ErrAborted
	}
	if !enemy.CanAttack() {
		s.emit(TurnSkipped{Turn: s.turn, ActorID: enemy.ID(), Reason: SkipCannotAttack})
		s.state = StatePlayerTurn
		s.turn++
		s.mu.Unlock()
		return nil
	}
	s.state = StateResolvingEnemyAction
	s.mu.Unlock()

	action, err := EnemyAction(enemy)
	if err != nil {
		return s.interrupt(err)
	}

	_, err = s.resolve(ctx, StateResolvingEnemyAction, enemy, player, action)
	return err
}

// resolve computes an attack, runs its suspension points and commits it.
// All pauses happen before the commit, so an abort at any of them discards
// the whole action.
func (s *Session) resolve(ctx context.Context, resolving State, actor, target *model.Combatant, action Action) (TurnResult, error) {
	res, err := s.compute(actor, target, action)
	if err != nil {
		if resolving == StateResolvingPlayerAction {
			s.restore(resolving, StatePlayerTurn)
			return TurnResult{}, err
		}
		// The enemy has no caller to retry for it.
		return TurnResult{}, s.interrupt(err)
	}

	steps := []Step{StepDiceRoll, StepDamage}
	if res.TargetDefeated {
		steps = append(steps, StepDefeat)
	}
	for _, step := range steps {
		pending := res
		beat := Beat{Step: step, ActorID: actor.ID(), TargetID: target.ID(), Pending: &pending}
		if err := s.pause(ctx, beat); err != nil {
			return TurnResult{}, s.interrupt(err)
		}
	}

	if err := s.commit(resolving, target, res); err != nil {
		return TurnResult{}, err
	}
	return res, nil
}

// compute runs DiceRoller → ModifierPipeline → CalcDamage without mutating anything.
func (s *Session) compute(actor, target *model.Combatant, action Action) (TurnResult, error) {
	sides := action.Dice.Sides()

	raw, err := s.roller.RollSpec(action.Dice)
	if err != nil {
		return TurnResult{}, fmt.Errorf("rolling %s: %w", action.Dice, err)
	}
	modified, err := s.pipeline.Apply(raw, action.Modifiers, sides)
	if err != nil {
		return TurnResult{}, fmt.Errorf("applying modifiers: %w", err)
	}

	damage, crit := CalcDamage(action.BaseDamage, modified, sides, actor.DamageMultiplier(), target.Defense())
	remaining := max(0, target.CurrentHP()-damage)

	s.mu.Lock()
	turn := s.turn
	s.mu.Unlock()

	return TurnResult{
		Turn:                  turn,
		ActorID:               actor.ID(),
		TargetID:              target.ID(),
		RawRoll:               raw,
		ModifiedRoll:          modified,
		Damage:                damage,
		IsCritical:            crit,
		TargetRemainingHealth: remaining,
		TargetDefeated:        remaining == 0,
	}, nil
}

// commit applies a computed result unless the session was aborted meanwhile.
func (s *Session) commit(resolving State, target *model.Combatant, res TurnResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != resolving {
		return ErrAborted
	}

	target.ReduceHP(res.Damage)
	s.emit(res)

	slog.Debug("damage applied",
		"actor", res.ActorID,
		"target", res.TargetID,
		"damage", res.Damage,
		"crit", res.IsCritical,
		"remainingHP", target.CurrentHP())

	switch {
	case target.IsDefeated() && resolving == StateResolvingPlayerAction:
		s.finishLocked(OutcomeVictory)
	case target.IsDefeated():
		s.finishLocked(OutcomeDefeat)
	case resolving == StateResolvingPlayerAction:
		s.state = StateEnemyTurn
	default:
		s.state = StatePlayerTurn
		s.turn++
	}
	return nil
}

// finishLocked moves to Ended, releases suspended steps and emits CombatEnded.
// Caller holds s.mu.
func (s *Session) finishLocked(outcome Outcome) {
	s.state = StateEnded
	s.outcome = outcome
	s.cancel()

	ended := CombatEnded{Outcome: outcome, Turns: s.turn}
	if outcome == OutcomeVictory {
		reward := CalcReward(s.enemy, s.rules, s.roller)
		ended.Experience = reward.Experience
		ended.Loot = reward.Loot
	}
	s.emit(ended)

	slog.Debug("combat finished",
		"player", s.player.ID(),
		"enemy", s.enemy.ID(),
		"outcome", outcome.String(),
		"turns", s.turn)
}

// restore reverts a resolving state after a failure that emitted nothing.
func (s *Session) restore(from, to State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == from {
		s.state = to
	}
}

// pause executes one suspension point. The step context is cancelled both
// by the caller's ctx and by Abort.
func (s *Session) pause(ctx context.Context, beat Beat) error {
	s.mu.Lock()
	pacer := s.pacer
	s.mu.Unlock()

	stepCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.abortCtx, cancel)
	defer stop()

	err := pacer.Pause(stepCtx, beat)
	if s.abortCtx.Err() != nil {
		return ErrAborted
	}
	return err
}

// interrupt turns a failed step into a terminal state. A cancelled caller
// context or a failing pacer abandons the combat as Fled.
func (s *Session) interrupt(err error) error {
	if errors.Is(err, ErrAborted) {
		return err
	}
	if abortErr := s.Abort(); abortErr != nil {
		return ErrAborted
	}
	slog.Warn("combat step interrupted", "error", err)
	return fmt.Errorf("%w: %w", ErrAborted, err)
}

// emit forwards e to the sink. Caller holds s.mu.
func (s *Session) emit(e Event) {
	s.sink.Emit(e)
}
