// Package modifier implements the ordered dice-modifier pipeline applied to a
// raw roll before damage is computed.
package modifier

import (
	"errors"
	"fmt"

	"github.com/udisondev/dicecrawl/internal/game/dice"
)

// Kind identifies the transformation a Modifier performs.
type Kind int

const (
	KindUnknown Kind = iota
	KindAddToRoll
	KindMultiplyRoll
	KindRerollIfAtMost
	KindMinimumRoll
)

func (k Kind) String() string {
	switch k {
	case KindAddToRoll:
		return "add"
	case KindMultiplyRoll:
		return "multiply"
	case KindRerollIfAtMost:
		return "reroll_if_at_most"
	case KindMinimumRoll:
		return "minimum"
	default:
		return "unknown"
	}
}

// ParseKind maps a card-data name back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "add":
		return KindAddToRoll, nil
	case "multiply":
		return KindMultiplyRoll, nil
	case "reroll_if_at_most":
		return KindRerollIfAtMost, nil
	case "minimum":
		return KindMinimumRoll, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ErrUnknownKind is returned for modifiers with an unrecognised Kind.
var ErrUnknownKind = errors.New("unknown modifier kind")

// Modifier is a named transformation of a dice roll.
// Value is the amount, factor, threshold or floor depending on Kind.
type Modifier struct {
	Kind  Kind
	Value int
}

// Add returns AddToRoll(amount).
func Add(amount int) Modifier { return Modifier{Kind: KindAddToRoll, Value: amount} }

// Multiply returns MultiplyRoll(factor).
func Multiply(factor int) Modifier { return Modifier{Kind: KindMultiplyRoll, Value: factor} }

// RerollIfAtMost returns RerollIfAtMost(threshold).
func RerollIfAtMost(threshold int) Modifier {
	return Modifier{Kind: KindRerollIfAtMost, Value: threshold}
}

// Minimum returns MinimumRoll(floor).
func Minimum(floor int) Modifier { return Modifier{Kind: KindMinimumRoll, Value: floor} }

func (m Modifier) String() string {
	return fmt.Sprintf("%s(%d)", m.Kind, m.Value)
}

// Pipeline folds modifiers over a raw roll.
type Pipeline struct {
	roller *dice.Roller
}

// NewPipeline creates a Pipeline. roller supplies fresh rolls for RerollIfAtMost.
func NewPipeline(roller *dice.Roller) *Pipeline {
	return &Pipeline{roller: roller}
}

// Apply transforms rawRoll through mods in declared order and returns the
// modified roll.
//
// Order matters: Add then Multiply differs from Multiply then Add.
// RerollIfAtMost compares the original rawRoll, not the running value, and on
// a hit replaces the running value with a fresh roll of the same die, so any
// Add/Multiply applied before it is discarded. Nothing clamps the result to the
// die maximum; MinimumRoll only raises a floor.
func (p *Pipeline) Apply(rawRoll int, mods []Modifier, sides int) (int, error) {
	modified := rawRoll
	for i, m := range mods {
		switch m.Kind {
		case KindAddToRoll:
			modified += m.Value
		case KindMultiplyRoll:
			modified *= m.Value
		case KindRerollIfAtMost:
			if rawRoll > m.Value {
				continue
			}
			fresh, err := p.roller.Roll(sides)
			if err != nil {
				return 0, fmt.Errorf("reroll at modifier %d: %w", i, err)
			}
			modified = fresh
		case KindMinimumRoll:
			modified = max(modified, m.Value)
		default:
			return 0, fmt.Errorf("modifier %d: %w: %d", i, ErrUnknownKind, m.Kind)
		}
	}
	return modified, nil
}

// Validate checks every modifier has a known Kind.
func Validate(mods []Modifier) error {
	for i, m := range mods {
		if m.Kind <= KindUnknown || m.Kind > KindMinimumRoll {
			return fmt.Errorf("modifier %d: %w: %d", i, ErrUnknownKind, m.Kind)
		}
	}
	return nil
}
