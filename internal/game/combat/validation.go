package combat

import (
	"fmt"

	"github.com/udisondev/dicecrawl/internal/model"
)

// ValidateTarget checks that a combatant can still be targeted.
//
// Checks:
//   - Target exists (not nil)
//   - Target alive
func ValidateTarget(target *model.Combatant) error {
	if target == nil {
		return fmt.Errorf("target is nil: %w", ErrInvalidTarget)
	}
	if target.IsDefeated() {
		return fmt.Errorf("target %s is already defeated: %w", target.ID(), ErrInvalidTarget)
	}
	return nil
}

// ValidateParticipants checks both sides of a combat before it starts.
func ValidateParticipants(attacker, defender *model.Combatant) error {
	if err := ValidateTarget(attacker); err != nil {
		return fmt.Errorf("attacker: %w", err)
	}
	if err := ValidateTarget(defender); err != nil {
		return fmt.Errorf("defender: %w", err)
	}
	if attacker == defender || attacker.ID() == defender.ID() {
		return fmt.Errorf("combatant %s cannot fight itself: %w", attacker.ID(), ErrInvalidTarget)
	}
	return nil
}
