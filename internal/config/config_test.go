package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGame_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadGame(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultGame(), cfg)
	assert.InDelta(t, 0.30, cfg.Combat.LootChance, 1e-9)
}

func TestLoadGame_OverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	yml := `
log_level: debug
combat:
  loot_chance: 0.5
  victory_floor: 3
pacing:
  dice_roll: 2s
  damage: 0s
database:
  enabled: true
  host: db
simulation:
  runs: 10
  deck: [strike]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := LoadGame(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.5, cfg.Combat.LootChance, 1e-9)
	assert.Equal(t, 3, cfg.Combat.VictoryFloor)
	assert.Equal(t, "gold_pouch", cfg.Combat.DefaultLootItem, "untouched fields keep defaults")
	assert.Equal(t, 2*time.Second, cfg.Pacing.DiceRoll)
	assert.Zero(t, cfg.Pacing.Damage)
	assert.Equal(t, DefaultPacing().Intro, cfg.Pacing.Intro)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://dicecrawl:dicecrawl@db:5432/dicecrawl?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"strike"}, cfg.Simulation.Deck)
}

func TestLoadGame_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("combat: [1, 2"), 0o600))

	_, err := LoadGame(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Game)
	}{
		{name: "loot chance above one", mutate: func(g *Game) { g.Combat.LootChance = 1.5 }},
		{name: "loot chance negative", mutate: func(g *Game) { g.Combat.LootChance = -0.1 }},
		{name: "floor heal above one", mutate: func(g *Game) { g.Combat.FloorHeal = 2 }},
		{name: "empty default loot item", mutate: func(g *Game) { g.Combat.DefaultLootItem = "" }},
		{name: "zero victory floor", mutate: func(g *Game) { g.Combat.VictoryFloor = 0 }},
		{name: "negative pacing", mutate: func(g *Game) { g.Pacing.Defeat = -time.Second }},
		{name: "negative runs", mutate: func(g *Game) { g.Simulation.Runs = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGame()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, DefaultGame().Validate())
}
