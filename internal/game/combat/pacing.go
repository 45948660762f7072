package combat

import (
	"context"
	"time"

	"github.com/udisondev/dicecrawl/internal/config"
)

// Step is a named suspension point of the session, used only to synchronise
// with presentation timing.
type Step int

const (
	StepIntro     Step = iota // combat start announcement
	StepTurnStart             // enemy turn announcement
	StepDiceRoll              // dice display
	StepDamage                // damage application
	StepDefeat                // defeat sequence of the losing side
)

func (s Step) String() string {
	switch s {
	case StepIntro:
		return "intro"
	case StepTurnStart:
		return "turn_start"
	case StepDiceRoll:
		return "dice_roll"
	case StepDamage:
		return "damage"
	case StepDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Beat describes one suspension point. Pending carries the not yet committed
// turn result during StepDiceRoll, StepDamage and StepDefeat so the
// presentation can show the roll; it is nil otherwise.
type Beat struct {
	Step     Step
	ActorID  string
	TargetID string
	Pending  *TurnResult
}

// Pacer executes suspension points. Pause must return promptly once ctx is
// done; the session cancels ctx when it is aborted.
type Pacer interface {
	Pause(ctx context.Context, beat Beat) error
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(ctx context.Context, beat Beat) error

// Pause calls f.
func (f PacerFunc) Pause(ctx context.Context, beat Beat) error { return f(ctx, beat) }

// NoDelay passes every step immediately. Used headless and in tests.
var NoDelay Pacer = PacerFunc(func(ctx context.Context, _ Beat) error {
	return ctx.Err()
})

// DelayPacer waits a fixed real-time delay per step.
type DelayPacer struct {
	delays map[Step]time.Duration
}

// NewDelayPacer builds a DelayPacer from configured timings.
func NewDelayPacer(p config.Pacing) *DelayPacer {
	return &DelayPacer{
		delays: map[Step]time.Duration{
			StepIntro:     p.Intro,
			StepTurnStart: p.TurnStart,
			StepDiceRoll:  p.DiceRoll,
			StepDamage:    p.Damage,
			StepDefeat:    p.Defeat,
		},
	}
}

// Delay returns the configured delay for step.
func (d *DelayPacer) Delay(step Step) time.Duration {
	return d.delays[step]
}

// Pause sleeps for the step's delay or until ctx is done.
func (d *DelayPacer) Pause(ctx context.Context, beat Beat) error {
	delay := d.delays[beat.Step]
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
