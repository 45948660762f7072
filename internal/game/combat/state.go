package combat

// State is a phase of the combat session state machine.
//
//	Idle → Starting → PlayerTurn ⇄ (ResolvingPlayerAction → EnemyTurn →
//	ResolvingEnemyAction → PlayerTurn) → Ended{Victory|Defeat|Fled}
type State int

const (
	StateIdle State = iota
	StateStarting
	StatePlayerTurn
	StateResolvingPlayerAction
	StateEnemyTurn
	StateResolvingEnemyAction
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StatePlayerTurn:
		return "player_turn"
	case StateResolvingPlayerAction:
		return "resolving_player_action"
	case StateEnemyTurn:
		return "enemy_turn"
	case StateResolvingEnemyAction:
		return "resolving_enemy_action"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s == StateEnded }

// Outcome is how an ended combat finished.
type Outcome int

const (
	OutcomeNone    Outcome = iota // combat still running
	OutcomeVictory                // enemy defeated
	OutcomeDefeat                 // player defeated
	OutcomeFled                   // aborted by flee/retreat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeFled:
		return "fled"
	default:
		return "unknown"
	}
}
