package agent

import (
	"golang.org/x/exp/slices"

	"hexkeep/game"
)

// Forward is a deterministic agent that pushes every unit toward the enemy castle row, aims at
// the most damaged target and spends combat damage finishing off units.
type Forward struct{}

func NewForward() *Forward {
	return &Forward{}
}

// rowGap is how many rows h is away from f's target castle row.
func rowGap(h game.Hex, f game.Faction) int {
	d := h.Row - game.EnemyCastleRow(f)
	if d < 0 {
		return -d
	}
	return d
}

// advance returns the legal destination that gets u closest to the enemy castle row, if any
// improves on where u stands.
func advance(gs *game.GameState, u *game.Unit) (game.Hex, bool) {
	best, found := u.Pos, false
	for _, h := range gs.LegalMoves(u.ID) {
		if rowGap(h, u.Faction) < rowGap(best, u.Faction) {
			best, found = h, true
		}
	}
	return best, found
}

func (f *Forward) NextMove(gs *game.GameState) (Action, bool) {
	actors := gs.Actors()
	if len(actors) == 0 {
		return Action{}, false
	}
	u := actors[0]
	if u.Type == game.Commander && u.ID != gs.CommanderTarget {
		if h, ok := f.orderHex(gs, u); ok {
			return Action{Unit: u.ID, To: h}, true
		}
		return Action{Unit: u.ID, Skip: true}, true
	}
	if h, ok := advance(gs, u); ok {
		return Action{Unit: u.ID, To: h}, true
	}
	return Action{Unit: u.ID, Skip: true}, true
}

// orderHex finds a friendly hex whose first unit can advance when ordered Forward!.
func (f *Forward) orderHex(gs *game.GameState, commander *game.Unit) (game.Hex, bool) {
	for _, h := range gs.LegalMoves(commander.ID) {
		for _, other := range gs.UnitsAt(h) {
			if other.Faction != commander.Faction || other.ID == commander.ID {
				continue
			}
			if _, ok := advance(gs, other); ok {
				return h, true
			}
			break
		}
	}
	return game.Hex{}, false
}

func (f *Forward) ChooseTarget(gs *game.GameState, u *game.Unit) (game.Hex, bool) {
	if u.Type == game.Cannon {
		hexes := gs.TargetHexes(u)
		if len(hexes) == 0 {
			return game.Hex{}, false
		}
		slices.SortStableFunc(hexes, func(a, b game.Hex) int {
			return len(gs.UnitsAt(b)) - len(gs.UnitsAt(a))
		})
		return hexes[0], true
	}
	targets := gs.AbilityTargets(u)
	if len(targets) == 0 {
		return game.Hex{}, false
	}
	return weakest(targets).Pos, true
}

func (f *Forward) Decide(gs *game.GameState, d *game.Decision) game.Answer {
	units := candidates(gs, d)
	switch {
	case len(units) == 0 && len(d.Candidates) == 0:
		return game.Answer{}
	case len(units) == 0:
		if d.Kind == game.AllocateDamage {
			return game.Answer{Allocation: map[game.UnitID]int{d.Candidates[0]: d.Total}}
		}
		return game.Answer{Unit: d.Candidates[0]}
	}

	switch d.Kind {
	case game.AllocateDamage:
		return game.Answer{Allocation: finishOff(units, d.Total)}
	case game.ChooseForwardUnit:
		for _, u := range units {
			if _, ok := advance(gs, u); ok {
				return game.Answer{Unit: u.ID}
			}
		}
		return game.Answer{Unit: units[0].ID}
	default:
		return game.Answer{Unit: weakest(units).ID}
	}
}

// weakest returns the unit with the fewest hit points, the first one on ties.
func weakest(units []*game.Unit) *game.Unit {
	i := 0
	for j, u := range units {
		if u.HP() < units[i].HP() {
			i = j
		}
	}
	return units[i]
}

// finishOff spends total on the weakest units first, just enough to destroy each one.
func finishOff(units []*game.Unit, total int) map[game.UnitID]int {
	ordered := slices.Clone(units)
	slices.SortStableFunc(ordered, func(a, b *game.Unit) int {
		return a.HP() - b.HP()
	})
	alloc := make(map[game.UnitID]int, len(ordered))
	remaining := total
	for _, u := range ordered {
		n := min(remaining, u.HP())
		alloc[u.ID] = n
		remaining -= n
	}
	if remaining > 0 {
		alloc[ordered[0].ID] += remaining
	}
	return alloc
}
