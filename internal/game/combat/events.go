package combat

// EventKind identifies an Event type.
type EventKind int

const (
	EventCombatStarted EventKind = iota + 1
	EventTurnResult
	EventTurnSkipped
	EventCombatEnded
)

func (k EventKind) String() string {
	switch k {
	case EventCombatStarted:
		return "combat_started"
	case EventTurnResult:
		return "turn_result"
	case EventTurnSkipped:
		return "turn_skipped"
	case EventCombatEnded:
		return "combat_ended"
	default:
		return "unknown"
	}
}

// Event is an outcome reported to the presentation layer.
type Event interface {
	Kind() EventKind
}

// CombatStarted is emitted once when a session leaves Idle.
type CombatStarted struct {
	AttackerID string
	DefenderID string
	BossFight  bool
}

// TurnResult is the immutable record of one resolved attack.
type TurnResult struct {
	Turn                  int
	ActorID               string
	TargetID              string
	RawRoll               int
	ModifiedRoll          int
	Damage                int
	IsCritical            bool
	TargetRemainingHealth int
	TargetDefeated        bool
}

// SkipReason explains a TurnSkipped event.
type SkipReason string

// SkipCannotAttack - противник не может атаковать (оглушение и т.п.).
const SkipCannotAttack SkipReason = "cannot_attack"

// TurnSkipped is emitted instead of a TurnResult when the actor may not act.
type TurnSkipped struct {
	Turn    int
	ActorID string
	Reason  SkipReason
}

// CombatEnded is emitted exactly once when a session reaches Ended.
// Loot and Experience are only set on Victory.
type CombatEnded struct {
	Outcome    Outcome
	Loot       *Loot
	Experience int
	Turns      int
}

// LootAwarded reports whether the victory dropped loot.
func (e CombatEnded) LootAwarded() bool { return e.Loot != nil }

func (CombatStarted) Kind() EventKind { return EventCombatStarted }
func (TurnResult) Kind() EventKind    { return EventTurnResult }
func (TurnSkipped) Kind() EventKind   { return EventTurnSkipped }
func (CombatEnded) Kind() EventKind   { return EventCombatEnded }
