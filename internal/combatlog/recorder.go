// Package combatlog turns combat events into persisted battle reports.
package combatlog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/dicecrawl/internal/game/combat"
	"github.com/udisondev/dicecrawl/internal/model"
)

// Recorder is a combat.Sink that builds a model.BattleReport for every
// session it observes. A single Recorder may watch consecutive sessions;
// CombatStarted begins a new report.
type Recorder struct {
	mu sync.Mutex

	seed     int64
	onFinish func(*model.BattleReport)
	now      func() time.Time

	current *model.BattleReport
	last    *model.BattleReport
	count   int
}

// NewRecorder creates a Recorder. seed is stored in every report so a battle
// can be replayed; onFinish (may be nil) receives each finished report and
// is called under the session lock, so it must not block.
func NewRecorder(seed int64, onFinish func(*model.BattleReport)) *Recorder {
	return &Recorder{
		seed:     seed,
		onFinish: onFinish,
		now:      time.Now,
	}
}

// Emit implements combat.Sink.
func (r *Recorder) Emit(e combat.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev := e.(type) {
	case combat.CombatStarted:
		r.current = &model.BattleReport{
			ID:         uuid.New(),
			Seed:       r.seed,
			AttackerID: ev.AttackerID,
			DefenderID: ev.DefenderID,
			BossFight:  ev.BossFight,
			StartedAt:  r.now(),
		}

	case combat.TurnResult:
		if r.current == nil {
			return
		}
		r.current.Turns = append(r.current.Turns, model.BattleTurn{
			Seq:          len(r.current.Turns) + 1,
			Kind:         model.TurnKindResult,
			ActorID:      ev.ActorID,
			TargetID:     ev.TargetID,
			RawRoll:      ev.RawRoll,
			ModifiedRoll: ev.ModifiedRoll,
			Damage:       ev.Damage,
			Critical:     ev.IsCritical,
			RemainingHP:  ev.TargetRemainingHealth,
			Defeated:     ev.TargetDefeated,
		})

	case combat.TurnSkipped:
		if r.current == nil {
			return
		}
		r.current.Turns = append(r.current.Turns, model.BattleTurn{
			Seq:        len(r.current.Turns) + 1,
			Kind:       model.TurnKindSkipped,
			ActorID:    ev.ActorID,
			SkipReason: string(ev.Reason),
		})

	case combat.CombatEnded:
		if r.current == nil {
			return
		}
		report := r.current
		report.Outcome = ev.Outcome.String()
		report.Experience = ev.Experience
		report.Rounds = ev.Turns
		if ev.Loot != nil {
			report.LootItemID = ev.Loot.ItemID
			report.LootCount = ev.Loot.Count
		}
		report.EndedAt = r.now()

		r.current = nil
		r.last = report
		r.count++
		if r.onFinish != nil {
			r.onFinish(report)
		}
	}
}

// Last returns the most recently finished report, or nil.
func (r *Recorder) Last() *model.BattleReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Finished returns how many reports were completed.
func (r *Recorder) Finished() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
