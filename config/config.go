package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"hexkeep/agent"
	"hexkeep/game"
	"hexkeep/meta"
)

var ErrInvalid = errors.New("invalid config")

type Match struct {
	MaxRounds int      `yaml:"max_rounds"`
	Seed      uint64   `yaml:"seed"`
	Games     int      `yaml:"games"`
	Workers   int      `yaml:"workers"`
	Agents    []string `yaml:"agents"` // Faction1 then Faction2
}

type Config struct {
	Rules     game.Rules `yaml:"rules"`
	Match     Match      `yaml:"match"`
	Scenario  string     `yaml:"scenario"` // empty for the built-in line-up
	OutputDir string     `yaml:"output_dir"`
	LogLevel  string     `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Rules: game.StandardRules(),
		Match: Match{
			MaxRounds: meta.MAX_ROUNDS,
			Seed:      1,
			Games:     meta.GAMES,
			Workers:   meta.WORKERS,
			Agents:    []string{agent.KindForward, agent.KindRandom},
		},
		OutputDir: "results",
		LogLevel:  "info",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	r := c.Rules
	positive := map[string]int{
		"rules.max_hp":        r.MaxHP,
		"rules.stack_limit":   r.StackLimit,
		"rules.win_margin":    r.WinMargin,
		"rules.streak_length": r.StreakLength,
		"match.max_rounds":    c.Match.MaxRounds,
		"match.workers":       c.Match.Workers,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, name, v)
		}
	}
	if c.Match.Games < 0 {
		return fmt.Errorf("%w: match.games must not be negative", ErrInvalid)
	}
	if len(c.Match.Agents) != len(game.Factions) {
		return fmt.Errorf("%w: need %d agents, got %d", ErrInvalid, len(game.Factions), len(c.Match.Agents))
	}
	for _, kind := range c.Match.Agents {
		if !slices.Contains(agent.Kinds, kind) {
			return fmt.Errorf("%w: unknown agent %q", ErrInvalid, kind)
		}
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level is the parsed log level.
func (c Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.LogLevel)
}
