package data

import "github.com/udisondev/dicecrawl/internal/model"

// SetTestEnemyDef populates EnemyTable with a test enemy definition.
// Intended for tests from other packages that need enemy data setup.
func SetTestEnemyDef(id string, stats model.CombatantStats, minFloor, maxFloor int) {
	if EnemyTable == nil {
		EnemyTable = make(map[string]*enemyDef, 8)
	}
	loot := make([]lootDef, len(stats.LootTable))
	for i, l := range stats.LootTable {
		loot[i] = lootDef{itemID: l.ItemID, min: l.Min, max: l.Max}
	}
	EnemyTable[id] = &enemyDef{
		id:               id,
		name:             id,
		hp:               stats.MaxHP,
		baseDamage:       stats.BaseDamage,
		defense:          stats.Defense,
		attackDice:       stats.AttackDice,
		damageMultiplier: stats.DamageMultiplier,
		exp:              stats.ExperienceReward,
		loot:             loot,
		isBoss:           stats.IsBoss,
		canAttack:        stats.CanAttack,
		minFloor:         minFloor,
		maxFloor:         maxFloor,
	}
}

// ClearTestEnemyTable resets EnemyTable for test isolation.
func ClearTestEnemyTable() {
	EnemyTable = make(map[string]*enemyDef, 8)
}

// DeleteTestEnemyDef removes a single entry from EnemyTable.
func DeleteTestEnemyDef(id string) {
	delete(EnemyTable, id)
}
