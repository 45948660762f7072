package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Game holds all configuration for the combat core and its tooling.
type Game struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	Combat     Combat         `yaml:"combat"`
	Pacing     Pacing         `yaml:"pacing"`
	Database   DatabaseConfig `yaml:"database"`
	Simulation Simulation     `yaml:"simulation"`
}

// Combat holds balance constants of combat resolution and of a run.
type Combat struct {
	// LootChance - шанс дропа с обычного (не босса) противника, [0, 1].
	// Боссы дропают всегда.
	LootChance float64 `yaml:"loot_chance"`

	// DefaultLootItem is awarded when loot drops from an enemy with an empty loot table.
	DefaultLootItem string `yaml:"default_loot_item"`

	// VictoryFloor is the floor count a run must clear to be won.
	VictoryFloor int `yaml:"victory_floor"`

	// FloorHeal - доля MaxHP, восстанавливаемая игроку при переходе на следующий этаж, [0, 1].
	FloorHeal float64 `yaml:"floor_heal"`
}

// Pacing holds the real-time delay of each combat suspension point.
// Zero durations make a step pass immediately.
type Pacing struct {
	Intro     time.Duration `yaml:"intro"`
	TurnStart time.Duration `yaml:"turn_start"`
	DiceRoll  time.Duration `yaml:"dice_roll"`
	Damage    time.Duration `yaml:"damage"`
	Defeat    time.Duration `yaml:"defeat"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the combat log.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Simulation configures the headless balance simulator.
type Simulation struct {
	Runs    int      `yaml:"runs"`
	Workers int      `yaml:"workers"`
	Seed    int64    `yaml:"seed"` // 0 = random seed
	Deck    []string `yaml:"deck"` // card IDs played round-robin
	Paced   bool     `yaml:"paced"`
}

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultCombat returns the shipped balance values.
func DefaultCombat() Combat {
	return Combat{
		LootChance:      0.30,
		DefaultLootItem: "gold_pouch",
		VictoryFloor:    10,
		FloorHeal:       0.25,
	}
}

// DefaultPacing returns the production presentation timings.
func DefaultPacing() Pacing {
	return Pacing{
		Intro:     1500 * time.Millisecond,
		TurnStart: 600 * time.Millisecond,
		DiceRoll:  1200 * time.Millisecond,
		Damage:    500 * time.Millisecond,
		Defeat:    1000 * time.Millisecond,
	}
}

// DefaultGame returns Game config with sensible defaults.
func DefaultGame() Game {
	return Game{
		LogLevel: "info",
		Combat:   DefaultCombat(),
		Pacing:   DefaultPacing(),
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "dicecrawl",
			Password: "dicecrawl",
			DBName:   "dicecrawl",
			SSLMode:  "disable",
		},
		Simulation: Simulation{
			Runs:    1000,
			Workers: 4,
			Deck:    []string{"strike", "heavy_blow", "lucky_strike", "steady_aim"},
		},
	}
}

// LoadGame loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (g Game) Validate() error {
	if err := g.Combat.Validate(); err != nil {
		return err
	}
	for name, d := range map[string]time.Duration{
		"intro":      g.Pacing.Intro,
		"turn_start": g.Pacing.TurnStart,
		"dice_roll":  g.Pacing.DiceRoll,
		"damage":     g.Pacing.Damage,
		"defeat":     g.Pacing.Defeat,
	} {
		if d < 0 {
			return fmt.Errorf("%w: pacing.%s is negative", ErrInvalidConfig, name)
		}
	}
	if g.Simulation.Runs < 0 || g.Simulation.Workers < 0 {
		return fmt.Errorf("%w: simulation runs and workers must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// Validate checks combat balance ranges.
func (c Combat) Validate() error {
	if c.LootChance < 0 || c.LootChance > 1 {
		return fmt.Errorf("%w: combat.loot_chance %.2f outside [0,1]", ErrInvalidConfig, c.LootChance)
	}
	if c.FloorHeal < 0 || c.FloorHeal > 1 {
		return fmt.Errorf("%w: combat.floor_heal %.2f outside [0,1]", ErrInvalidConfig, c.FloorHeal)
	}
	if c.DefaultLootItem == "" {
		return fmt.Errorf("%w: combat.default_loot_item is required, bosses always drop", ErrInvalidConfig)
	}
	if c.VictoryFloor < 1 {
		return fmt.Errorf("%w: combat.victory_floor must be at least 1", ErrInvalidConfig)
	}
	return nil
}
