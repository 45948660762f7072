package data

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/dicecrawl/internal/game/combat"
	"github.com/udisondev/dicecrawl/internal/game/dice"
	"github.com/udisondev/dicecrawl/internal/game/modifier"
)

// ErrUnknownCard is returned for card IDs missing from CardTable.
var ErrUnknownCard = errors.New("unknown card")

// CardTable - registry боевых карт.
// map[cardID]*cardDef
var CardTable map[string]*cardDef

// GetCardDef возвращает cardDef по ID.
// Returns nil если карта не найдена.
func GetCardDef(id string) *cardDef {
	if CardTable == nil {
		return nil
	}
	return CardTable[id]
}

// LoadCards строит CardTable из Go-литералов (cardDefs).
// Every card is converted once so broken literals fail at startup.
func LoadCards() error {
	CardTable = make(map[string]*cardDef, len(cardDefs))

	for i := range cardDefs {
		def := &cardDefs[i]
		if _, err := def.Action(); err != nil {
			return fmt.Errorf("card %q: %w", def.id, err)
		}
		CardTable[def.id] = def
	}

	slog.Info("loaded cards", "count", len(CardTable))
	return nil
}

func (c *cardDef) ID() string          { return c.id }
func (c *cardDef) Name() string        { return c.name }
func (c *cardDef) BaseDamage() int     { return c.baseDamage }
func (c *cardDef) Sides() int          { return c.sides }
func (c *cardDef) Description() string { return c.description }

// Action converts the card into a combat action.
func (c *cardDef) Action() (combat.Action, error) {
	spec, err := dice.NewSpec(c.sides)
	if err != nil {
		return combat.Action{}, err
	}

	mods := make([]modifier.Modifier, 0, len(c.modifiers))
	for _, m := range c.modifiers {
		kind, err := modifier.ParseKind(m.kind)
		if err != nil {
			return combat.Action{}, err
		}
		mods = append(mods, modifier.Modifier{Kind: kind, Value: m.value})
	}

	return combat.Action{BaseDamage: c.baseDamage, Dice: spec, Modifiers: mods}, nil
}

// CardAction looks up a card and converts it into a combat action.
func CardAction(id string) (combat.Action, error) {
	def := GetCardDef(id)
	if def == nil {
		return combat.Action{}, fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	return def.Action()
}
