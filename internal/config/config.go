package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Movement  MovementConfig  `yaml:"movement"`
	Look      LookConfig      `yaml:"look"`
	Animation AnimationConfig `yaml:"animation"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type MovementConfig struct {
	Acceleration  float64 `yaml:"acceleration"`
	MaxSpeed      float64 `yaml:"max_speed"`
	Drag          float64 `yaml:"drag"`
	MoveThreshold float64 `yaml:"move_threshold"`
	Gravity       float64 `yaml:"gravity"`
	// GroundLayers is a bitmask; zero means "collide with everything" and
	// is resolved by the ground detector at construction time.
	GroundLayers uint32 `yaml:"ground_layers"`
}

type LookConfig struct {
	SenseH float64 `yaml:"sense_h"`
	SenseV float64 `yaml:"sense_v"`
	LimitV float64 `yaml:"limit_v"`
}

type AnimationConfig struct {
	BlendSpeed float64 `yaml:"blend_speed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Movement: MovementConfig{
			Acceleration:  35,
			MaxSpeed:      4,
			Drag:          20,
			MoveThreshold: 0.01,
			Gravity:       -19.62,
		},
		Look: LookConfig{
			SenseH: 2.0,
			SenseV: 2.0,
			LimitV: 80,
		},
		Animation: AnimationConfig{
			BlendSpeed: 8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML tuning file. Zero-valued numeric fields fall back to
// the defaults above, so a partial file only overrides what it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Movement.Acceleration == 0 {
		c.Movement.Acceleration = def.Movement.Acceleration
	}
	if c.Movement.MaxSpeed == 0 {
		c.Movement.MaxSpeed = def.Movement.MaxSpeed
	}
	if c.Movement.Drag == 0 {
		c.Movement.Drag = def.Movement.Drag
	}
	if c.Movement.MoveThreshold == 0 {
		c.Movement.MoveThreshold = def.Movement.MoveThreshold
	}
	if c.Movement.Gravity == 0 {
		c.Movement.Gravity = def.Movement.Gravity
	}
	if c.Look.SenseH == 0 {
		c.Look.SenseH = def.Look.SenseH
	}
	if c.Look.SenseV == 0 {
		c.Look.SenseV = def.Look.SenseV
	}
	if c.Look.LimitV == 0 {
		c.Look.LimitV = def.Look.LimitV
	}
	if c.Animation.BlendSpeed == 0 {
		c.Animation.BlendSpeed = def.Animation.BlendSpeed
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
}
