package data

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/dicecrawl/internal/model"
)

// ErrUnknownEnemy is returned for enemy IDs missing from EnemyTable.
var ErrUnknownEnemy = errors.New("unknown enemy")

// EnemyTable - глобальный registry всех enemy templates.
// map[enemyID]*enemyDef
var EnemyTable map[string]*enemyDef

// GetEnemyDef возвращает enemyDef по ID.
// Returns nil если противник не найден.
func GetEnemyDef(id string) *enemyDef {
	if EnemyTable == nil {
		return nil
	}
	return EnemyTable[id]
}

// LoadEnemyTemplates строит EnemyTable из Go-литералов (enemyDefs).
func LoadEnemyTemplates() error {
	EnemyTable = make(map[string]*enemyDef, len(enemyDefs))

	for i := range enemyDefs {
		def := &enemyDefs[i]
		if _, dup := EnemyTable[def.id]; dup {
			return fmt.Errorf("duplicate enemy id %q", def.id)
		}
		if def.minFloor > def.maxFloor {
			return fmt.Errorf("enemy %q: floor range %d..%d", def.id, def.minFloor, def.maxFloor)
		}
		EnemyTable[def.id] = def
	}

	slog.Info("loaded enemy templates", "count", len(EnemyTable))
	return nil
}

func (d *enemyDef) ID() string                { return d.id }
func (d *enemyDef) Name() string              { return d.name }
func (d *enemyDef) HP() int                   { return d.hp }
func (d *enemyDef) BaseDamage() int           { return d.baseDamage }
func (d *enemyDef) Defense() int              { return d.defense }
func (d *enemyDef) AttackDice() int           { return d.attackDice }
func (d *enemyDef) DamageMultiplier() float64 { return d.damageMultiplier }
func (d *enemyDef) Exp() int                  { return d.exp }
func (d *enemyDef) IsBoss() bool              { return d.isBoss }
func (d *enemyDef) CanAttack() bool           { return d.canAttack }
func (d *enemyDef) MinFloor() int             { return d.minFloor }
func (d *enemyDef) MaxFloor() int             { return d.maxFloor }

// AppearsOn reports whether the enemy spawns on floor.
func (d *enemyDef) AppearsOn(floor int) bool {
	return floor >= d.minFloor && floor <= d.maxFloor
}

// Stats converts the template into combatant construction parameters.
func (d *enemyDef) Stats() model.CombatantStats {
	loot := make([]model.LootEntry, len(d.loot))
	for i, l := range d.loot {
		loot[i] = model.LootEntry{ItemID: l.itemID, Min: l.min, Max: l.max}
	}
	return model.CombatantStats{
		MaxHP:            d.hp,
		BaseDamage:       d.baseDamage,
		Defense:          d.defense,
		AttackDice:       d.attackDice,
		DamageMultiplier: d.damageMultiplier,
		ExperienceReward: d.exp,
		IsBoss:           d.isBoss,
		CanAttack:        d.canAttack,
		LootTable:        loot,
	}
}

// EnemiesForFloor returns regular (non-boss) enemies spawning on floor,
// ordered by ID.
func EnemiesForFloor(floor int) []*enemyDef {
	var out []*enemyDef
	for _, def := range EnemyTable {
		if !def.isBoss && def.AppearsOn(floor) {
			out = append(out, def)
		}
	}
	slices.SortFunc(out, func(a, b *enemyDef) int { return cmp.Compare(a.id, b.id) })
	return out
}

// BossForFloor returns the boss guarding floor, or nil.
func BossForFloor(floor int) *enemyDef {
	for _, def := range EnemyTable {
		if def.isBoss && def.AppearsOn(floor) {
			return def
		}
	}
	return nil
}

// NewEnemy creates a fresh combatant from the template with the given ID.
func NewEnemy(id string) (*model.Combatant, error) {
	def := GetEnemyDef(id)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, id)
	}
	return model.NewCombatant(def.id, def.name, def.Stats())
}

// NewHero creates the player combatant with starting stats.
func NewHero() (*model.Combatant, error) {
	return model.NewCombatant(heroDef.id, heroDef.name, heroDef.Stats())
}
