package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCombatant_Defaults(t *testing.T) {
	c, err := NewCombatant("rat", "Cave Rat", CombatantStats{MaxHP: 20, BaseDamage: 3, CanAttack: true})
	require.NoError(t, err)

	assert.Equal(t, "rat", c.ID())
	assert.Equal(t, "Cave Rat", c.Name())
	assert.Equal(t, 20, c.MaxHP())
	assert.Equal(t, 20, c.CurrentHP(), "combatant starts at full health")
	assert.Equal(t, DefaultAttackDice, c.AttackDice())
	assert.InDelta(t, 1.0, c.DamageMultiplier(), 1e-9)
	assert.True(t, c.CanAttack())
	assert.False(t, c.IsBoss())
	assert.False(t, c.IsDefeated())
}

func TestNewCombatant_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		stats CombatantStats
	}{
		{"empty id", "", CombatantStats{MaxHP: 10}},
		{"zero hp", "a", CombatantStats{MaxHP: 0}},
		{"negative hp", "a", CombatantStats{MaxHP: -5}},
		{"one-sided die", "a", CombatantStats{MaxHP: 10, AttackDice: 1}},
		{"negative multiplier", "a", CombatantStats{MaxHP: 10, DamageMultiplier: -0.5}},
		{"negative experience", "a", CombatantStats{MaxHP: 10, ExperienceReward: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCombatant(tt.id, "x", tt.stats)
			assert.ErrorIs(t, err, ErrInvalidCombatant)
		})
	}
}

func TestCombatant_ReduceHP(t *testing.T) {
	c, err := NewCombatant("a", "A", CombatantStats{MaxHP: 10})
	require.NoError(t, err)

	assert.Equal(t, 7, c.ReduceHP(3))
	assert.Equal(t, 7, c.ReduceHP(0), "zero damage is a no-op")
	assert.Equal(t, 7, c.ReduceHP(-4), "negative damage never heals")
	assert.InDelta(t, 0.7, c.HPPercentage(), 1e-9)

	assert.Equal(t, 0, c.ReduceHP(100), "HP never goes below zero")
	assert.True(t, c.IsDefeated())
	assert.InDelta(t, 0.0, c.HPPercentage(), 1e-9)
}

func TestCombatant_SetCurrentHP(t *testing.T) {
	c, err := NewCombatant("a", "A", CombatantStats{MaxHP: 10})
	require.NoError(t, err)

	c.SetCurrentHP(25)
	assert.Equal(t, 10, c.CurrentHP())

	c.SetCurrentHP(-3)
	assert.Equal(t, 0, c.CurrentHP())

	c.SetCurrentHP(4)
	assert.Equal(t, 4, c.CurrentHP())
}

func TestCombatant_LootTableIsCopied(t *testing.T) {
	table := []LootEntry{{ItemID: "fang", Min: 1, Max: 2}}
	c, err := NewCombatant("a", "A", CombatantStats{MaxHP: 10, LootTable: table})
	require.NoError(t, err)

	table[0].ItemID = "changed"
	assert.Equal(t, "fang", c.LootTable()[0].ItemID, "constructor copies the table")

	got := c.LootTable()
	got[0].Max = 99
	assert.Equal(t, 2, c.LootTable()[0].Max, "accessor returns a copy")
}

func TestCombatant_SetCanAttack(t *testing.T) {
	c, err := NewCombatant("a", "A", CombatantStats{MaxHP: 10, CanAttack: true})
	require.NoError(t, err)

	c.SetCanAttack(false)
	assert.False(t, c.CanAttack())
}
