package model

import (
	"time"

	"github.com/google/uuid"
)

// Battle turn kinds stored in the combat log.
const (
	TurnKindResult  = "result"
	TurnKindSkipped = "skipped"
)

// BattleReport is the persisted record of one finished combat session.
type BattleReport struct {
	ID         uuid.UUID
	Seed       int64
	AttackerID string
	DefenderID string
	BossFight  bool
	Outcome    string
	Experience int
	LootItemID string // empty when nothing dropped
	LootCount  int
	Rounds     int // round counter at the end of combat
	Turns      []BattleTurn
	StartedAt  time.Time
	EndedAt    time.Time
}

// BattleTurn is one resolved or skipped turn inside a BattleReport.
type BattleTurn struct {
	Seq          int
	Kind         string
	ActorID      string
	TargetID     string
	RawRoll      int
	ModifiedRoll int
	Damage       int
	Critical     bool
	RemainingHP  int
	Defeated     bool
	SkipReason   string
}

// TotalDamageBy sums damage dealt by the given actor across all turns.
func (r *BattleReport) TotalDamageBy(actorID string) int {
	total := 0
	for _, t := range r.Turns {
		if t.Kind == TurnKindResult && t.ActorID == actorID {
			total += t.Damage
		}
	}
	return total
}
