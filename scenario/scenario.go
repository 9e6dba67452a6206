package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hexkeep/game"
)

var ErrInvalid = errors.New("invalid scenario")

//go:embed standard.yaml
var standard []byte

// Placement is one unit of a starting line-up.
type Placement struct {
	Faction int    `yaml:"faction"`
	Type    string `yaml:"type"` // unit type name, e.g. "Battering Ram"
	Row     int    `yaml:"row"`
	Col     int    `yaml:"col"`
}

type Scenario struct {
	Name  string      `yaml:"name"`
	Units []Placement `yaml:"units"`
}

// Standard returns the built-in skirmish line-up.
func Standard() *Scenario {
	s, err := Parse(standard)
	if err != nil {
		panic(fmt.Sprintf("built-in scenario: %v", err))
	}
	return s
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	for i, p := range s.Units {
		if _, _, err := p.resolve(); err != nil {
			return nil, fmt.Errorf("unit %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (p Placement) resolve() (game.UnitType, game.Faction, error) {
	t, ok := game.ParseUnitType(p.Type)
	if !ok {
		return 0, game.NoFaction, fmt.Errorf("%w: unknown unit type %q", ErrInvalid, p.Type)
	}
	f := game.Faction(p.Faction)
	if f != game.Faction1 && f != game.Faction2 {
		return 0, game.NoFaction, fmt.Errorf("%w: faction must be 1 or 2, got %d", ErrInvalid, p.Faction)
	}
	return t, f, nil
}

// Apply places every unit of s on a game still in setup.
func Apply(gs *game.GameState, s *Scenario) error {
	for i, p := range s.Units {
		t, f, err := p.resolve()
		if err != nil {
			return fmt.Errorf("unit %d: %w", i+1, err)
		}
		if _, err := gs.PlaceUnit(t, f, game.Hex{Row: p.Row, Col: p.Col}); err != nil {
			return fmt.Errorf("unit %d (%s at [%d, %d]): %w", i+1, p.Type, p.Row, p.Col, err)
		}
	}
	return nil
}
