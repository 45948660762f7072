package combat

import (
	"github.com/udisondev/dicecrawl/internal/config"
	"github.com/udisondev/dicecrawl/internal/game/dice"
	"github.com/udisondev/dicecrawl/internal/model"
)

// Reward is what the winner of a combat receives.
type Reward struct {
	Experience int
	Loot       *Loot
}

// CalcReward computes experience and loot for defeating enemy.
// Experience is the enemy's fixed ExperienceReward; loot is rolled via RollLoot.
func CalcReward(enemy *model.Combatant, rules *config.Combat, roller *dice.Roller) Reward {
	return Reward{
		Experience: enemy.ExperienceReward(),
		Loot:       RollLoot(enemy, rules, roller),
	}
}
