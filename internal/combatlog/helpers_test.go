package combatlog

import "github.com/udisondev/dicecrawl/internal/game/combat"

func startedEvent() combat.Event {
	return combat.CombatStarted{AttackerID: "hero", DefenderID: "rat"}
}

func endedEvent() combat.Event {
	return combat.CombatEnded{Outcome: combat.OutcomeFled}
}
