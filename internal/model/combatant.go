package model

import (
	"errors"
	"fmt"
)

// DefaultAttackDice is the die an enemy attacks with when its template does not name one.
const DefaultAttackDice = 6

// ErrInvalidCombatant is returned by NewCombatant for unusable stats.
var ErrInvalidCombatant = errors.New("invalid combatant")

// LootEntry - одна позиция таблицы лута противника.
type LootEntry struct {
	ItemID string
	Min    int
	Max    int
}

// CombatantStats holds the construction parameters of a Combatant.
type CombatantStats struct {
	MaxHP            int
	BaseDamage       int
	Defense          int
	AttackDice       int     // sides of the die used for the combatant's own attacks
	DamageMultiplier float64 // 0 means 1.0
	ExperienceReward int
	IsBoss           bool
	CanAttack        bool
	LootTable        []LootEntry
}

// Combatant is an entity participating in a combat session (player or enemy).
//
// A Combatant is exclusively owned by the active combat session while combat
// is running; nothing else may change its health during that time, so it
// carries no locking of its own.
type Combatant struct {
	id   string
	name string

	maxHP     int
	currentHP int

	baseDamage       int
	defense          int
	attackDice       int
	damageMultiplier float64
	experienceReward int

	isBoss    bool
	canAttack bool

	lootTable []LootEntry
}

// NewCombatant создаёт бойца с полным HP.
func NewCombatant(id, name string, stats CombatantStats) (*Combatant, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidCombatant)
	}
	if stats.MaxHP <= 0 {
		return nil, fmt.Errorf("%w: %s max hp %d must be positive", ErrInvalidCombatant, id, stats.MaxHP)
	}
	if stats.AttackDice == 0 {
		stats.AttackDice = DefaultAttackDice
	}
	if stats.AttackDice < 2 {
		return nil, fmt.Errorf("%w: %s attack dice d%d", ErrInvalidCombatant, id, stats.AttackDice)
	}
	if stats.DamageMultiplier == 0 {
		stats.DamageMultiplier = 1.0
	}
	if stats.DamageMultiplier < 0 {
		return nil, fmt.Errorf("%w: %s damage multiplier %.2f", ErrInvalidCombatant, id, stats.DamageMultiplier)
	}
	if stats.ExperienceReward < 0 {
		return nil, fmt.Errorf("%w: %s negative experience reward", ErrInvalidCombatant, id)
	}

	loot := make([]LootEntry, len(stats.LootTable))
	copy(loot, stats.LootTable)

	return &Combatant{
		id:               id,
		name:             name,
		maxHP:            stats.MaxHP,
		currentHP:        stats.MaxHP,
		baseDamage:       stats.BaseDamage,
		defense:          stats.Defense,
		attackDice:       stats.AttackDice,
		damageMultiplier: stats.DamageMultiplier,
		experienceReward: stats.ExperienceReward,
		isBoss:           stats.IsBoss,
		canAttack:        stats.CanAttack,
		lootTable:        loot,
	}, nil
}

func (c *Combatant) ID() string                { return c.id }
func (c *Combatant) Name() string              { return c.name }
func (c *Combatant) MaxHP() int                { return c.maxHP }
func (c *Combatant) CurrentHP() int            { return c.currentHP }
func (c *Combatant) BaseDamage() int           { return c.baseDamage }
func (c *Combatant) Defense() int              { return c.defense }
func (c *Combatant) AttackDice() int           { return c.attackDice }
func (c *Combatant) DamageMultiplier() float64 { return c.damageMultiplier }
func (c *Combatant) ExperienceReward() int     { return c.experienceReward }
func (c *Combatant) IsBoss() bool              { return c.isBoss }
func (c *Combatant) CanAttack() bool           { return c.canAttack }

// LootTable returns a copy of the combatant's loot table.
func (c *Combatant) LootTable() []LootEntry {
	out := make([]LootEntry, len(c.lootTable))
	copy(out, c.lootTable)
	return out
}

// SetCanAttack toggles whether the combatant may act on its turn (stun, sleep, etc).
func (c *Combatant) SetCanAttack(v bool) { c.canAttack = v }

// SetCurrentHP устанавливает HP с ограничением [0, maxHP].
func (c *Combatant) SetCurrentHP(hp int) {
	c.currentHP = max(0, min(hp, c.maxHP))
}

// ReduceHP subtracts damage from current HP, never going below zero.
// Returns the remaining HP.
func (c *Combatant) ReduceHP(damage int) int {
	if damage > 0 {
		c.SetCurrentHP(c.currentHP - damage)
	}
	return c.currentHP
}

// IsDefeated returns true once current HP reached zero.
func (c *Combatant) IsDefeated() bool {
	return c.currentHP <= 0
}

// HPPercentage returns current HP as a fraction of max HP in [0, 1].
func (c *Combatant) HPPercentage() float64 {
	return float64(c.currentHP) / float64(c.maxHP)
}
