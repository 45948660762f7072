package combat

import (
	"github.com/udisondev/dicecrawl/internal/config"
	"github.com/udisondev/dicecrawl/internal/game/dice"
	"github.com/udisondev/dicecrawl/internal/model"
)

// Loot is the item awarded for defeating an enemy.
type Loot struct {
	ItemID string
	Count  int
}

// RollLoot decides whether the defeated enemy drops loot and what.
//
// Algorithm:
//  1. Bosses always drop; other enemies drop with rules.LootChance.
//  2. An entry is picked uniformly from the enemy loot table.
//  3. Count = random(min..max), at least 1.
//  4. An empty loot table falls back to rules.DefaultLootItem ×1, or to the
//     shipped default item when rules leave it empty.
func RollLoot(enemy *model.Combatant, rules *config.Combat, roller *dice.Roller) *Loot {
	chance := rules.LootChance
	if enemy.IsBoss() {
		chance = 1
	}
	if !roller.Chance(chance) {
		return nil
	}

	table := enemy.LootTable()
	if len(table) == 0 {
		item := rules.DefaultLootItem
		if item == "" {
			item = config.DefaultCombat().DefaultLootItem
		}
		return &Loot{ItemID: item, Count: 1}
	}

	entry := table[roller.IntRange(0, len(table)-1)]

	minCount := max(entry.Min, 1)
	maxCount := max(entry.Max, minCount)

	return &Loot{
		ItemID: entry.ItemID,
		Count:  roller.IntRange(minCount, maxCount),
	}
}
