package combat

import (
	"fmt"

	"github.com/udisondev/dicecrawl/internal/game/dice"
	"github.com/udisondev/dicecrawl/internal/game/modifier"
	"github.com/udisondev/dicecrawl/internal/model"
)

// Action is one attack submitted for resolution: base damage, the die to
// roll and the ordered modifiers applied to the roll.
type Action struct {
	BaseDamage int
	Dice       dice.Spec
	Modifiers  []modifier.Modifier
}

// Validate rejects actions that could not be resolved.
func (a Action) Validate() error {
	if !a.Dice.Valid() {
		return fmt.Errorf("action dice: %w", dice.ErrInvalidDiceSpec)
	}
	if err := modifier.Validate(a.Modifiers); err != nil {
		return fmt.Errorf("action modifiers: %w", err)
	}
	return nil
}

// EnemyAction builds the fixed "always attack" action of an enemy from its
// own base damage and attack die.
func EnemyAction(enemy *model.Combatant) (Action, error) {
	spec, err := dice.NewSpec(enemy.AttackDice())
	if err != nil {
		return Action{}, fmt.Errorf("enemy %s: %w", enemy.ID(), err)
	}
	return Action{BaseDamage: enemy.BaseDamage(), Dice: spec}, nil
}
