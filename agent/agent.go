package agent

import (
	"fmt"

	"hexkeep/game"
)

const (
	KindRandom  = "random"
	KindForward = "forward"
)

// Kinds lists the agent names accepted by New.
var Kinds = []string{KindRandom, KindForward}

// New builds an agent by name. The seed only matters for randomized agents.
func New(kind string, seed uint64) (Agent, error) {
	switch kind {
	case KindRandom:
		return NewRandom(seed), nil
	case KindForward:
		return NewForward(), nil
	default:
		return nil, fmt.Errorf("unknown agent %q", kind)
	}
}

// Action is one movement-phase instruction. Skip holds the unit in place, or cancels an open
// Forward! order when Unit is the ordered unit.
type Action struct {
	Unit game.UnitID
	To   game.Hex
	Skip bool
}

// Agent plays one faction.
type Agent interface {
	// NextMove returns the next action for the moving faction, or false once it is done for the phase.
	NextMove(gs *game.GameState) (Action, bool)
	// ChooseTarget picks the ability target hex for u, or false to keep the default.
	ChooseTarget(gs *game.GameState, u *game.Unit) (game.Hex, bool)
	// Decide answers a pending decision addressed to the agent's faction.
	Decide(gs *game.GameState, d *game.Decision) game.Answer
}

// targetOptions lists the hexes u can aim its ability at.
func targetOptions(gs *game.GameState, u *game.Unit) []game.Hex {
	if u.Type == game.Cannon {
		return gs.TargetHexes(u)
	}
	var hexes []game.Hex
	for _, target := range gs.AbilityTargets(u) {
		hexes = append(hexes, target.Pos)
	}
	return hexes
}

func candidates(gs *game.GameState, d *game.Decision) []*game.Unit {
	var units []*game.Unit
	for _, id := range d.Candidates {
		if u := gs.Unit(id); u != nil {
			units = append(units, u)
		}
	}
	return units
}
