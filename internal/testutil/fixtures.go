package testutil

import (
	"testing"

	"github.com/udisondev/dicecrawl/internal/game/combat"
	"github.com/udisondev/dicecrawl/internal/game/dice"
	"github.com/udisondev/dicecrawl/internal/model"
)

// Fixtures содержит общие тестовые данные
// для избежания дублирования в тестах.
var Fixtures = struct {
	Seed int64

	// Базовые характеристики
	HeroStats model.CombatantStats
	RatStats  model.CombatantStats
	BossStats model.CombatantStats
	StunStats model.CombatantStats

	// Действия игрока
	Strike combat.Action
}{
	Seed: 20260301,

	HeroStats: model.CombatantStats{MaxHP: 30, Defense: 1, CanAttack: true},
	RatStats: model.CombatantStats{
		MaxHP: 12, BaseDamage: 2, AttackDice: 4, ExperienceReward: 5, CanAttack: true,
		LootTable: []model.LootEntry{{ItemID: "rat_tail", Min: 1, Max: 2}},
	},
	BossStats: model.CombatantStats{
		MaxHP: 10, BaseDamage: 4, ExperienceReward: 60, IsBoss: true, CanAttack: true,
		LootTable: []model.LootEntry{{ItemID: "rat_crown", Min: 1, Max: 1}},
	},
	StunStats: model.CombatantStats{MaxHP: 20, BaseDamage: 50, Defense: 0, CanAttack: false},

	Strike: combat.Action{BaseDamage: 5, Dice: dice.MustSpec(6)},
}

// NewCombatant создаёт бойца или валит тест.
func NewCombatant(tb testing.TB, id string, stats model.CombatantStats) *model.Combatant {
	tb.Helper()
	c, err := model.NewCombatant(id, id, stats)
	if err != nil {
		tb.Fatalf("NewCombatant(%s): %v", id, err)
	}
	return c
}

// NewHero creates the standard test player.
func NewHero(tb testing.TB) *model.Combatant {
	return NewCombatant(tb, "hero", Fixtures.HeroStats)
}
