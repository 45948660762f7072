package combat

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dicecrawl/internal/config"
	"github.com/udisondev/dicecrawl/internal/game/dice"
	"github.com/udisondev/dicecrawl/internal/game/modifier"
	"github.com/udisondev/dicecrawl/internal/model"
)

func newTestCombatant(t *testing.T, id string, stats model.CombatantStats) *model.Combatant {
	t.Helper()
	c, err := model.NewCombatant(id, id, stats)
	require.NoError(t, err)
	return c
}

func newTestPlayer(t *testing.T) *model.Combatant {
	return newTestCombatant(t, "hero", model.CombatantStats{MaxHP: 30, Defense: 1, CanAttack: true})
}

func newTestRat(t *testing.T) *model.Combatant {
	return newTestCombatant(t, "rat", model.CombatantStats{
		MaxHP:            50,
		BaseDamage:       4,
		Defense:          2,
		ExperienceReward: 15,
		CanAttack:        true,
	})
}

func d6(base int, mods ...modifier.Modifier) Action {
	return Action{BaseDamage: base, Dice: dice.MustSpec(6), Modifiers: mods}
}

func startSession(t *testing.T, src dice.Source, player, enemy *model.Combatant) (*Session, *RecordingSink) {
	t.Helper()
	sink := &RecordingSink{}
	s := NewSession(sink, src, nil)
	require.NoError(t, s.Initiate(context.Background(), player, enemy))
	require.Equal(t, StatePlayerTurn, s.State())
	return s, sink
}

func TestSession_FullRound(t *testing.T) {
	player, enemy := newTestPlayer(t), newTestRat(t)
	s, sink := startSession(t, NewScriptedSource(Face(2), Face(3)), player, enemy)

	require.NoError(t, s.PlayAction(context.Background(), d6(3)))

	assert.Equal(t, []EventKind{EventCombatStarted, EventTurnResult, EventTurnResult}, sink.Kinds())

	results := sink.TurnResults()
	require.Len(t, results, 2)
	assert.Equal(t, TurnResult{
		Turn: 1, ActorID: "hero", TargetID: "rat",
		RawRoll: 2, ModifiedRoll: 2, Damage: 3,
		TargetRemainingHealth: 47,
	}, results[0])
	assert.Equal(t, TurnResult{
		Turn: 1, ActorID: "rat", TargetID: "hero",
		RawRoll: 3, ModifiedRoll: 3, Damage: 6,
		TargetRemainingHealth: 24,
	}, results[1])

	assert.Equal(t, 47, enemy.CurrentHP())
	assert.Equal(t, 24, player.CurrentHP())
	assert.Equal(t, StatePlayerTurn, s.State())
	assert.Equal(t, 2, s.Turn())
	assert.Equal(t, OutcomeNone, s.Outcome())
}

func TestSession_LethalFirstStrike(t *testing.T) {
	player := newTestPlayer(t)
	enemy := newTestCombatant(t, "slime", model.CombatantStats{MaxHP: 10, ExperienceReward: 15, CanAttack: true})

	// face 6 on d6 is a critical: (5+6)*2 = 22; loot roll 9999 misses the 30% chance
	s, sink := startSession(t, NewScriptedSource(Face(6), 9999), player, enemy)
	require.NoError(t, s.PlayAction(context.Background(), d6(5)))

	assert.Equal(t, []EventKind{EventCombatStarted, EventTurnResult, EventCombatEnded}, sink.Kinds())

	res := sink.TurnResults()[0]
	assert.Equal(t, 22, res.Damage)
	assert.True(t, res.IsCritical)
	assert.True(t, res.TargetDefeated)
	assert.Equal(t, 0, res.TargetRemainingHealth)

	ended, ok := sink.Ended()
	require.True(t, ok)
	assert.Equal(t, OutcomeVictory, ended.Outcome)
	assert.Equal(t, 15, ended.Experience)
	assert.Nil(t, ended.Loot)
	assert.Equal(t, 1, ended.Turns)

	assert.Equal(t, StateEnded, s.State())
	assert.Equal(t, 30, player.CurrentHP(), "enemy must not act after being defeated")

	select {
	case <-s.Done():
	default:
		t.Error("Done must be closed after the combat ended")
	}
}

func TestSession_CriticalJudgedAfterModifiers(t *testing.T) {
	player, enemy := newTestPlayer(t), newTestRat(t)
	s, sink := startSession(t, NewScriptedSource(Face(4), Face(1)), player, enemy)

	require.NoError(t, s.PlayAction(context.Background(), d6(0, modifier.Add(2))))

	res := sink.TurnResults()[0]
	assert.Equal(t, 4, res.RawRoll)
	assert.Equal(t, 6, res.ModifiedRoll)
	assert.True(t, res.IsCritical)
	assert.Equal(t, 10, res.Damage) // (0+6)*2 - 2
}

func TestSession_Defeat(t *testing.T) {
	player := newTestCombatant(t, "hero", model.CombatantStats{MaxHP: 5, CanAttack: true})
	enemy := newTestRat(t)

	s, sink := startSession(t, NewScriptedSource(Face(1), Face(3)), player, enemy)
	require.NoError(t, s.PlayAction(context.Background(), d6(1)))

	ended, ok := sink.Ended()
	require.True(t, ok)
	assert.Equal(t, OutcomeDefeat, ended.Outcome)
	assert.Zero(t, ended.Experience)
	assert.Nil(t, ended.Loot)

	assert.Equal(t, 49, enemy.CurrentHP()) // 1+1 against defense 2 floors at 1
	assert.True(t, player.IsDefeated())
	assert.Equal(t, OutcomeDefeat, s.Outcome())
}

func TestSession_EndedRejectsActions(t *testing.T) {
	player := newTestPlayer(t)
	enemy := newTestCombatant(t, "slime", model.CombatantStats{MaxHP: 1, CanAttack: true})
	s, sink := startSession(t, NewScriptedSource(Face(1), 9999), player, enemy)

	require.NoError(t, s.PlayAction(context.Background(), d6(1)))
	require.Equal(t, StateEnded, s.State())
	before := len(sink.Events())

	err := s.PlayAction(context.Background(), d6(1))
	assert.ErrorIs(t, err, ErrIllegalStateTransition)
	assert.ErrorIs(t, s.Abort(), ErrIllegalStateTransition)
	assert.Len(t, sink.Events(), before)
	assert.Equal(t, OutcomeVictory, s.Outcome())
}

func TestSession_IllegalTransitions(t *testing.T) {
	t.Run("play before initiate", func(t *testing.T) {
		sink := &RecordingSink{}
		s := NewSession(sink, NewScriptedSource(), nil)

		err := s.PlayAction(context.Background(), d6(1))
		assert.ErrorIs(t, err, ErrIllegalStateTransition)
		assert.Empty(t, sink.Events())
		assert.Equal(t, StateIdle, s.State())
	})

	t.Run("abort before initiate", func(t *testing.T) {
		sink := &RecordingSink{}
		s := NewSession(sink, NewScriptedSource(), nil)

		assert.ErrorIs(t, s.Abort(), ErrIllegalStateTransition)
		assert.Empty(t, sink.Events())
	})

	t.Run("initiate twice", func(t *testing.T) {
		s, sink := startSession(t, NewScriptedSource(), newTestPlayer(t), newTestRat(t))

		err := s.Initiate(context.Background(), newTestPlayer(t), newTestRat(t))
		assert.ErrorIs(t, err, ErrIllegalStateTransition)
		assert.Len(t, sink.Events(), 1)
	})
}

func TestSession_InvalidParticipants(t *testing.T) {
	defeated := newTestRat(t)
	defeated.ReduceHP(1000)
	player := newTestPlayer(t)

	tests := []struct {
		name     string
		attacker *model.Combatant
		defender *model.Combatant
	}{
		{name: "nil defender", attacker: player, defender: nil},
		{name: "nil attacker", attacker: nil, defender: newTestRat(t)},
		{name: "defeated defender", attacker: player, defender: defeated},
		{name: "self", attacker: player, defender: player},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &RecordingSink{}
			s := NewSession(sink, NewScriptedSource(), nil)

			err := s.Initiate(context.Background(), tt.attacker, tt.defender)
			assert.ErrorIs(t, err, ErrInvalidTarget)
			assert.Equal(t, StateIdle, s.State())
			assert.Empty(t, sink.Events())
		})
	}
}

func TestSession_InvalidAction(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		wantErr error
	}{
		{name: "missing dice", action: Action{BaseDamage: 3}, wantErr: dice.ErrInvalidDiceSpec},
		{name: "unknown modifier", action: d6(3, modifier.Modifier{Kind: modifier.KindUnknown}), wantErr: modifier.ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewScriptedSource()
			player, enemy := newTestPlayer(t), newTestRat(t)
			s, sink := startSession(t, src, player, enemy)

			err := s.PlayAction(context.Background(), tt.action)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, StatePlayerTurn, s.State())
			assert.Len(t, sink.Events(), 1)
			assert.Zero(t, src.Consumed(), "rejected action must not roll")
			assert.Equal(t, 50, enemy.CurrentHP())
		})
	}
}

func TestSession_AbortWhileWaiting(t *testing.T) {
	player, enemy := newTestPlayer(t), newTestRat(t)
	s, sink := startSession(t, NewScriptedSource(), player, enemy)

	require.NoError(t, s.Abort())

	assert.Equal(t, StateEnded, s.State())
	assert.Equal(t, OutcomeFled, s.Outcome())
	assert.Equal(t, []EventKind{EventCombatStarted, EventCombatEnded}, sink.Kinds())

	ended, _ := sink.Ended()
	assert.Zero(t, ended.Experience)
	assert.Nil(t, ended.Loot)
}

func TestSession_AbortDuringPlayerResolution(t *testing.T) {
	for _, step := range []Step{StepDiceRoll, StepDamage} {
		t.Run(step.String(), func(t *testing.T) {
			player, enemy := newTestPlayer(t), newTestRat(t)
			sink := &RecordingSink{}
			s := NewSession(sink, NewScriptedSource(Face(5), Face(5)), nil)
			s.SetPacer(PacerFunc(func(ctx context.Context, beat Beat) error {
				if beat.Step == step && beat.ActorID == "hero" {
					require.NoError(t, s.Abort())
				}
				return ctx.Err()
			}))
			require.NoError(t, s.Initiate(context.Background(), player, enemy))

			err := s.PlayAction(context.Background(), d6(3))
			assert.ErrorIs(t, err, ErrAborted)

			assert.Equal(t, []EventKind{EventCombatStarted, EventCombatEnded}, sink.Kinds())
			assert.Equal(t, 50, enemy.CurrentHP(), "aborted action must not deal damage")
			assert.Equal(t, OutcomeFled, s.Outcome())
		})
	}
}

func TestSession_AbortDuringEnemyResolution(t *testing.T) {
	for _, step := range []Step{StepTurnStart, StepDiceRoll, StepDamage} {
		t.Run(step.String(), func(t *testing.T) {
			player, enemy := newTestPlayer(t), newTestRat(t)
			sink := &RecordingSink{}
			s := NewSession(sink, NewScriptedSource(Face(2), Face(6)), nil)
			s.SetPacer(PacerFunc(func(ctx context.Context, beat Beat) error {
				if beat.Step == step && beat.ActorID == "rat" {
					require.NoError(t, s.Abort())
				}
				return ctx.Err()
			}))
			require.NoError(t, s.Initiate(context.Background(), player, enemy))

			err := s.PlayAction(context.Background(), d6(3))
			assert.NoError(t, err, "player's hit was committed before the abort")

			assert.Equal(t, []EventKind{EventCombatStarted, EventTurnResult, EventCombatEnded}, sink.Kinds())
			assert.Equal(t, "hero", sink.TurnResults()[0].ActorID)
			assert.Equal(t, 47, enemy.CurrentHP())
			assert.Equal(t, 30, player.CurrentHP(), "aborted enemy attack must not deal damage")
			assert.Equal(t, OutcomeFled, s.Outcome())
		})
	}
}

func TestSession_CancelDuringEnemyTurn(t *testing.T) {
	player, enemy := newTestPlayer(t), newTestRat(t)
	sink := &RecordingSink{}
	s := NewSession(sink, NewScriptedSource(Face(2), Face(6)), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.SetPacer(PacerFunc(func(stepCtx context.Context, beat Beat) error {
		if beat.Step == StepTurnStart {
			cancel()
		}
		return stepCtx.Err()
	}))
	require.NoError(t, s.Initiate(context.Background(), player, enemy))

	err := s.PlayAction(ctx, d6(3))
	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 47, enemy.CurrentHP(), "player's hit stays applied")
	assert.Equal(t, 30, player.CurrentHP())
	assert.Equal(t, OutcomeFled, s.Outcome())
}

func TestSession_AbortDuringIntro(t *testing.T) {
	player, enemy := newTestPlayer(t), newTestRat(t)
	sink := &RecordingSink{}
	s := NewSession(sink, NewScriptedSource(), nil)
	s.SetPacer(PacerFunc(func(ctx context.Context, beat Beat) error {
		if beat.Step == StepIntro {
			require.NoError(t, s.Abort())
		}
		return ctx.Err()
	}))

	err := s.Initiate(context.Background(), player, enemy)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, StateEnded, s.State())
	assert.Equal(t, []EventKind{EventCombatStarted, EventCombatEnded}, sink.Kinds())
}

func TestSession_CancelledContext(t *testing.T) {
	player, enemy := newTestPlayer(t), newTestRat(t)
	s, sink := startSession(t, NewScriptedSource(Face(6)), player, enemy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.PlayAction(ctx, d6(3))
	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, OutcomeFled, s.Outcome())
	assert.Equal(t, []EventKind{EventCombatStarted, EventCombatEnded}, sink.Kinds())
	assert.Equal(t, 50, enemy.CurrentHP())
}

func TestSession_PacerFailure(t *testing.T) {
	errDisplay := errors.New("display gone")
	sink := &RecordingSink{}
	s := NewSession(sink, NewScriptedSource(), nil)
	s.SetPacer(PacerFunc(func(context.Context, Beat) error { return errDisplay }))

	err := s.Initiate(context.Background(), newTestPlayer(t), newTestRat(t))
	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, errDisplay)
	assert.Equal(t, OutcomeFled, s.Outcome())
}

func TestSession_StepSequence(t *testing.T) {
	type beatRec struct {
		step    Step
		actor   string
		pending bool
	}

	t.Run("full round", func(t *testing.T) {
		var beats []beatRec
		var pendings []TurnResult
		sink := &RecordingSink{}
		s := NewSession(sink, NewScriptedSource(Face(2), Face(3)), nil)
		s.SetPacer(PacerFunc(func(_ context.Context, b Beat) error {
			beats = append(beats, beatRec{step: b.Step, actor: b.ActorID, pending: b.Pending != nil})
			if b.Pending != nil && b.Step == StepDamage {
				pendings = append(pendings, *b.Pending)
			}
			return nil
		}))

		require.NoError(t, s.Initiate(context.Background(), newTestPlayer(t), newTestRat(t)))
		require.NoError(t, s.PlayAction(context.Background(), d6(3)))

		assert.Equal(t, []beatRec{
			{StepIntro, "hero", false},
			{StepDiceRoll, "hero", true},
			{StepDamage, "hero", true},
			{StepTurnStart, "rat", false},
			{StepDiceRoll, "rat", true},
			{StepDamage, "rat", true},
		}, beats)
		assert.Equal(t, sink.TurnResults(), pendings, "pending results must match what is committed")
	})

	t.Run("lethal strike", func(t *testing.T) {
		var steps []Step
		s := NewSession(nil, NewScriptedSource(Face(6), 9999), nil)
		s.SetPacer(PacerFunc(func(_ context.Context, b Beat) error {
			steps = append(steps, b.Step)
			return nil
		}))

		enemy := newTestCombatant(t, "slime", model.CombatantStats{MaxHP: 3, CanAttack: true})
		require.NoError(t, s.Initiate(context.Background(), newTestPlayer(t), enemy))
		require.NoError(t, s.PlayAction(context.Background(), d6(1)))

		assert.Equal(t, []Step{StepIntro, StepDiceRoll, StepDamage, StepDefeat}, steps)
	})
}

func TestSession_PacedTimeline(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		player, enemy := newTestPlayer(t), newTestRat(t)
		s := NewSession(nil, NewScriptedSource(Face(2), Face(3)), nil)
		s.SetPacer(NewDelayPacer(config.DefaultPacing()))

		start := time.Now()
		require.NoError(t, s.Initiate(context.Background(), player, enemy))
		assert.Equal(t, 1500*time.Millisecond, time.Since(start))

		start = time.Now()
		require.NoError(t, s.PlayAction(context.Background(), d6(3)))
		// player: dice 1200 + damage 500; enemy: turn start 600 + dice 1200 + damage 500
		assert.Equal(t, 4000*time.Millisecond, time.Since(start))
	})
}

func TestSession_AbortFromAnotherGoroutine(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		player, enemy := newTestPlayer(t), newTestRat(t)
		sink := &RecordingSink{}
		s := NewSession(sink, NewScriptedSource(Face(2), Face(3)), nil)
		s.SetPacer(NewDelayPacer(config.DefaultPacing()))
		require.NoError(t, s.Initiate(context.Background(), player, enemy))

		go func() {
			// lands inside the player's dice roll display (0..1200ms)
			time.Sleep(500 * time.Millisecond)
			_ = s.Abort()
		}()

		start := time.Now()
		err := s.PlayAction(context.Background(), d6(3))
		assert.ErrorIs(t, err, ErrAborted)
		assert.Equal(t, 500*time.Millisecond, time.Since(start))

		<-s.Done()
		assert.Equal(t, OutcomeFled, s.Outcome())
		assert.Equal(t, 50, enemy.CurrentHP())
		assert.Equal(t, []EventKind{EventCombatStarted, EventCombatEnded}, sink.Kinds())
	})
}
