package config

import (
	"fmt"
	"time"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	MinMCTSIterations = 1
	MaxMCTSIterations = 15000
)

// Fields where the zero value is a valid setting have no env-default: cleanenv applies
// it over a zero value read from the file. Their defaults come from Default.
type Config struct {
	LogLevel          string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Shape             string        `yaml:"player-shape" env:"PLAYER_SHAPE" env-default:"x"`
	PlayerPlaysFirst  bool          `yaml:"player-plays-first" env:"PLAYER_PLAYS_FIRST"`
	PlayingAI         bool          `yaml:"playing-ai" env:"PLAYING_AI"`
	MaxMCTSIterations int           `yaml:"max-mcts-iterations" env:"MAX_MCTS_ITERATIONS" env-default:"1000"`
	Exploration       float64       `yaml:"exploration" env:"MCTS_EXPLORATION"`
	NormalDelay       time.Duration `yaml:"normal-delay" env:"NORMAL_DELAY"`
	UltimateDelay     time.Duration `yaml:"ultimate-delay" env:"ULTIMATE_DELAY"`
}

func Default() *Config {
	return &Config{
		LogLevel:          "info",
		Shape:             "x",
		PlayerPlaysFirst:  true,
		PlayingAI:         true,
		MaxMCTSIterations: 1000,
		Exploration:       1.414,
		NormalDelay:       200 * time.Millisecond,
		UltimateDelay:     750 * time.Millisecond,
	}
}

// Load the yaml file at 'path' with environment overrides,
// an empty path reads the environment only
func Load(path string) (*Config, error) {
	config := Default()

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoad - load the configuration, panics on error
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) Validate() error {
	if c.MaxMCTSIterations < MinMCTSIterations || c.MaxMCTSIterations > MaxMCTSIterations {
		return fmt.Errorf("max-mcts-iterations must be within %d..%d, got %d",
			MinMCTSIterations, MaxMCTSIterations, c.MaxMCTSIterations)
	}
	if c.Exploration < 0 {
		return fmt.Errorf("exploration must not be negative, got %v", c.Exploration)
	}
	if c.NormalDelay < 0 || c.UltimateDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if _, err := board.ParseShape(c.Shape); err != nil {
		return fmt.Errorf("player-shape: %w", err)
	}
	return nil
}

func (c *Config) PlayerShape() board.Shape {
	s, err := board.ParseShape(c.Shape)
	if err != nil {
		return board.X
	}
	return s
}

// The engine always plays the other shape
func (c *Config) EngineShape() board.Shape {
	return c.PlayerShape().Other()
}
