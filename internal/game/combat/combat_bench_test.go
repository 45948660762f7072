package combat

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/udisondev/dicecrawl/internal/game/dice"
	"github.com/udisondev/dicecrawl/internal/game/modifier"
	"github.com/udisondev/dicecrawl/internal/model"
)

// --- helpers ---

func benchCombatant(id string, hp int) *model.Combatant {
	c, err := model.NewCombatant(id, id, model.CombatantStats{
		MaxHP:      hp,
		BaseDamage: 3,
		Defense:    1,
		CanAttack:  true,
	})
	if err != nil {
		panic(err)
	}
	return c
}

// --- pure functions ---

// BenchmarkCalcDamage_NoCrit benchmarks the damage formula without a critical.
// Expected: ~2-5ns (arithmetic + math.Round).
func BenchmarkCalcDamage_NoCrit(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		_, _ = CalcDamage(5, 3, 6, 1.0, 2)
	}
}

// BenchmarkCalcDamage_WithCrit benchmarks the damage formula with a critical.
func BenchmarkCalcDamage_WithCrit(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		_, _ = CalcDamage(5, 6, 6, 1.5, 2)
	}
}

// BenchmarkPipeline benchmarks a roll through a typical modifier chain.
func BenchmarkPipeline(b *testing.B) {
	roller := dice.NewRoller(rand.New(rand.NewPCG(1, 2)))
	pipeline := modifier.NewPipeline(roller)
	mods := []modifier.Modifier{modifier.RerollIfAtMost(1), modifier.Add(2), modifier.Minimum(3)}

	b.ReportAllocs()
	for range b.N {
		raw, _ := roller.Roll(6)
		_, _ = pipeline.Apply(raw, mods, 6)
	}
}

// --- full session ---

// BenchmarkSession_Duel benchmarks a headless duel until one side falls.
func BenchmarkSession_Duel(b *testing.B) {
	src := rand.New(rand.NewPCG(3, 4))
	action := Action{BaseDamage: 3, Dice: dice.MustSpec(6)}
	ctx := context.Background()

	b.ReportAllocs()
	for range b.N {
		s := NewSession(nil, src, nil)
		if err := s.Initiate(ctx, benchCombatant("hero", 60), benchCombatant("rat", 60)); err != nil {
			b.Fatal(err)
		}
		for s.State() == StatePlayerTurn {
			if err := s.PlayAction(ctx, action); err != nil {
				b.Fatal(err)
			}
		}
	}
}
