package combat

import "math"

// CriticalMultiplier is applied to base damage plus roll on a critical hit.
const CriticalMultiplier = 2

// CalcDamage converts base damage, the modified roll and combatant stats into
// final damage and a critical-hit flag.
//
// Formula:
//
//	raw = baseDamage + modifiedRoll
//	crit when modifiedRoll == diceMax (post-modifier value); raw ×= 2
//	raw -= defenderDefense
//	damage = round(max(1, raw) × attackerMultiplier)
//
// Damage is never below 1, whatever the defense or multiplier.
func CalcDamage(baseDamage, modifiedRoll, diceMax int, attackerMultiplier float64, defenderDefense int) (int, bool) {
	raw := baseDamage + modifiedRoll

	isCrit := modifiedRoll == diceMax
	if isCrit {
		raw *= CriticalMultiplier
	}

	raw -= defenderDefense

	// Minimum 1 damage
	damage := max(1, raw)
	damage = int(math.Round(float64(damage) * attackerMultiplier))

	// Multipliers below 0.5 would round a 1 down to 0.
	return max(1, damage), isCrit
}
