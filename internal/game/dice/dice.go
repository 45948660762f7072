// Package dice implements die specs and the seeded dice roller used by combat.
package dice

import (
	"errors"
	"fmt"
)

// MinSides is the smallest die the roller accepts.
const MinSides = 2

// ErrInvalidDiceSpec indicates a die with fewer than MinSides sides.
var ErrInvalidDiceSpec = errors.New("dice must have at least 2 sides")

// Source is the randomness provider for dice rolls.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a random int in [0, n). n > 0.
	IntN(n int) int
}

// Spec describes an N-sided die. The zero value is invalid; use NewSpec.
type Spec struct {
	sides int
}

// NewSpec validates sides and returns a Spec.
func NewSpec(sides int) (Spec, error) {
	if err := Validate(sides); err != nil {
		return Spec{}, err
	}
	return Spec{sides: sides}, nil
}

// MustSpec is NewSpec for compile-time constants; it panics on invalid sides.
func MustSpec(sides int) Spec {
	s, err := NewSpec(sides)
	if err != nil {
		panic(err)
	}
	return s
}

// Sides returns the number of faces; also the maximum face value.
func (s Spec) Sides() int { return s.sides }

// Valid reports whether the spec was built through NewSpec.
func (s Spec) Valid() bool { return s.sides >= MinSides }

func (s Spec) String() string { return fmt.Sprintf("d%d", s.sides) }

// Validate checks that a die with the given sides can be rolled.
func Validate(sides int) error {
	if sides < MinSides {
		return fmt.Errorf("d%d: %w", sides, ErrInvalidDiceSpec)
	}
	return nil
}

// Roller produces uniformly distributed face values.
//
// # Determinism
//
// A Roller owns no randomness of its own: given two sources seeded
// identically, the same sequence of Roll calls yields the same faces.
// Roller is not safe for concurrent use unless its Source is.
type Roller struct {
	src Source
}

// NewRoller creates a Roller backed by src.
func NewRoller(src Source) *Roller {
	return &Roller{src: src}
}

// Roll returns a face in [1, sides].
func (r *Roller) Roll(sides int) (int, error) {
	if err := Validate(sides); err != nil {
		return 0, err
	}
	return r.src.IntN(sides) + 1, nil
}

// RollSpec rolls the die described by spec.
func (r *Roller) RollSpec(spec Spec) (int, error) {
	return r.Roll(spec.sides)
}

// Chance returns true with probability p (clamped to [0, 1]).
// Resolution is 1/10000.
func (r *Roller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return float64(r.src.IntN(10000)) < p*10000
}

// IntRange returns a value in [lo, hi]. hi < lo yields lo.
func (r *Roller) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.IntN(hi-lo+1)
}
