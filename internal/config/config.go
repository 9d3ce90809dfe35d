// Package config provides the tunable rules of the game: field geometry, character
// rosters, speed curves, level pacing and difficulty tiers. Rules are loaded from a
// YAML file layered over built-in defaults so a missing file still yields a playable game.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all rules for a game session
type Config struct {
	Field         FieldConfig               `yaml:"field"`
	CharacterSize float64                   `yaml:"character_size"`
	Player        PlayerConfig              `yaml:"player"`
	Projectile    ProjectileConfig          `yaml:"projectile"`
	Names         NamesConfig               `yaml:"names"`
	Phrases       []string                  `yaml:"phrases"`
	Speeds        SpeedConfig               `yaml:"speeds"`
	Levels        LevelConfig               `yaml:"levels"`
	Boss          BossConfig                `yaml:"boss"`
	Difficulties  map[string]DifficultyTier `yaml:"difficulties"`
	Difficulty    string                    `yaml:"difficulty"` // Tier used when none is chosen
	Effects       EffectsConfig             `yaml:"effects"`
}

// FieldConfig is the playfield size in pixels
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig describes the player-controlled character
type PlayerConfig struct {
	Name         string  `yaml:"name"`
	BaseSpeed    float64 `yaml:"base_speed"`    // Pixels per frame at level 1
	BottomMargin float64 `yaml:"bottom_margin"` // Gap between the spawn point and the bottom edge
}

// ProjectileConfig describes the upward-flying projectile
type ProjectileConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Pixels per frame, always upward
}

// NamesConfig lists the character rosters
type NamesConfig struct {
	Targets   []string `yaml:"targets"`   // Drawn with repetition
	Obstacles []string `yaml:"obstacles"` // Drawn without repetition, once per game
	Boss      string   `yaml:"boss"`
}

// SpeedConfig defines the level-1 speeds and the per-level growth factor
type SpeedConfig struct {
	Target   float64 `yaml:"target"`
	Obstacle float64 `yaml:"obstacle"`
	Growth   float64 `yaml:"growth"`
}

// LevelConfig defines level pacing
type LevelConfig struct {
	Max             int           `yaml:"max"`
	Duration        time.Duration `yaml:"duration"`
	TargetBase      int           `yaml:"target_base"`
	TargetIncrement int           `yaml:"target_increment"`
}

// BossConfig defines the boss stage
type BossConfig struct {
	SizeMultiplier    float64 `yaml:"size_multiplier"`
	SpeedFactor       float64 `yaml:"speed_factor"` // Relative to the current obstacle speed
	HitPointsPerLevel int     `yaml:"hit_points_per_level"`
}

// DifficultyTier sets the initial spawn counts
type DifficultyTier struct {
	Targets   int `yaml:"targets"`
	Obstacles int `yaml:"obstacles"`
}

// TextEffect styles one kind of floating text
type TextEffect struct {
	Text     string        `yaml:"text"`
	Duration time.Duration `yaml:"duration"`
	Color    string        `yaml:"color"`
	Size     float64       `yaml:"size"`
}

// EffectsConfig styles the floating texts emitted by game events
type EffectsConfig struct {
	Score        TextEffect `yaml:"score"`
	Blocked      TextEffect `yaml:"blocked"`
	BossHit      TextEffect `yaml:"boss_hit"`
	BossSpawned  TextEffect `yaml:"boss_spawned"`
	BossDefeated TextEffect `yaml:"boss_defeated"`
}

// Default difficulty tier names
const (
	DifficultyEasy   = "easy"
	DifficultyNormal = "normal"
	DifficultyHard   = "hard"
)

// DefaultFontSize is used by floating texts that do not set a size
const DefaultFontSize = 16

// DefaultConfig returns the rules of the original game
func DefaultConfig() *Config {
	return &Config{
		Field:         FieldConfig{Width: 800, Height: 600},
		CharacterSize: 50,
		Player: PlayerConfig{
			Name:         "Apo",
			BaseSpeed:    5,
			BottomMargin: 10,
		},
		Projectile: ProjectileConfig{Width: 10, Height: 20, Speed: 7},
		Names: NamesConfig{
			Targets:   []string{"Defne", "Meri", "Kıvılcım", "Işıl", "Doğa"},
			Obstacles: []string{"Fatih", "Mustafa", "Nilay", "Nursema"},
			Boss:      "Sönmez",
		},
		Phrases: []string{"Yala beni", "Tırmala beni", "Kaşı beni"},
		Speeds:  SpeedConfig{Target: 2, Obstacle: 3, Growth: 1.25},
		Levels: LevelConfig{
			Max:             5,
			Duration:        30 * time.Second,
			TargetBase:      20,
			TargetIncrement: 5,
		},
		Boss: BossConfig{
			SizeMultiplier:    2.5,
			SpeedFactor:       0.8,
			HitPointsPerLevel: 3,
		},
		Difficulties: map[string]DifficultyTier{
			DifficultyEasy:   {Targets: 3, Obstacles: 1},
			DifficultyNormal: {Targets: 2, Obstacles: 2},
			DifficultyHard:   {Targets: 2, Obstacles: 3},
		},
		Difficulty: DifficultyNormal,
		Effects: EffectsConfig{
			Score:        TextEffect{Text: "+1", Duration: time.Second, Color: "gold"},
			Blocked:      TextEffect{Text: "X", Duration: 500 * time.Millisecond, Color: "grey"},
			BossHit:      TextEffect{Text: "-1", Duration: 300 * time.Millisecond, Color: "orange", Size: 20},
			BossSpawned:  TextEffect{Text: "BOSS!", Duration: 2500 * time.Millisecond, Color: "red", Size: 40},
			BossDefeated: TextEffect{Text: "Boss Gitti!", Duration: 2 * time.Second, Color: "red", Size: 30},
		},
	}
}

// LoadConfig loads game rules from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	cfg := DefaultConfig() // Start with defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects geometry and pacing values the simulation cannot run with.
// Empty rosters are allowed; spawning from them is a logged no-op.
func (c *Config) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("invalid field size: %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.CharacterSize <= 0 || c.CharacterSize > c.Field.Width || c.CharacterSize > c.Field.Height/3 {
		return fmt.Errorf("invalid character size %v for a %vx%v field", c.CharacterSize, c.Field.Width, c.Field.Height)
	}
	if c.Projectile.Width <= 0 || c.Projectile.Height <= 0 || c.Projectile.Speed <= 0 {
		return fmt.Errorf("invalid projectile: %vx%v at speed %v", c.Projectile.Width, c.Projectile.Height, c.Projectile.Speed)
	}
	if c.Speeds.Growth <= 0 {
		return fmt.Errorf("speed growth must be positive, got %v", c.Speeds.Growth)
	}
	if c.Levels.Max < 1 {
		return fmt.Errorf("max level must be at least 1, got %d", c.Levels.Max)
	}
	if c.Levels.Duration < time.Second {
		return fmt.Errorf("level duration must be at least 1s, got %v", c.Levels.Duration)
	}
	if c.Boss.HitPointsPerLevel < 1 {
		return fmt.Errorf("boss hit points per level must be at least 1, got %d", c.Boss.HitPointsPerLevel)
	}
	return nil
}

// Tier returns the spawn counts for a difficulty name, falling back to the
// configured default tier and then to the normal tier.
func (c *Config) Tier(name string) (DifficultyTier, string) {
	if tier, ok := c.Difficulties[name]; ok {
		return tier, name
	}
	if tier, ok := c.Difficulties[c.Difficulty]; ok {
		return tier, c.Difficulty
	}
	return DefaultConfig().Difficulties[DifficultyNormal], DifficultyNormal
}

// DifficultyNames returns the tiers in menu order: the three standard tiers first,
// then any custom tiers.
func (c *Config) DifficultyNames() []string {
	names := make([]string, 0, len(c.Difficulties))
	seen := make(map[string]bool)
	for _, n := range []string{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		if _, ok := c.Difficulties[n]; ok {
			names = append(names, n)
			seen[n] = true
		}
	}
	var extra []string
	for n := range c.Difficulties {
		if !seen[n] {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// AllNames returns every character name that needs an image: player, targets,
// obstacles and boss.
func (c *Config) AllNames() []string {
	names := []string{c.Player.Name}
	names = append(names, c.Names.Targets...)
	names = append(names, c.Names.Obstacles...)
	if c.Names.Boss != "" {
		names = append(names, c.Names.Boss)
	}
	return names
}
