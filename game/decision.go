package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// DecisionKind names the input the engine is waiting for.
type DecisionKind int

const (
	AllocateDamage DecisionKind = iota + 1
	ChooseAbilityTarget
	ChooseChargeTarget
	ChooseForwardUnit
)

func (k DecisionKind) String() string {
	switch k {
	case AllocateDamage:
		return "AllocateDamage"
	case ChooseAbilityTarget:
		return "ChooseAbilityTarget"
	case ChooseChargeTarget:
		return "ChooseChargeTarget"
	case ChooseForwardUnit:
		return "ChooseForwardUnit"
	default:
		return "Unknown"
	}
}

// Decision describes a choice the engine has suspended on.
type Decision struct {
	Kind       DecisionKind
	Faction    Faction // who decides
	Actor      UnitID  // unit whose action needs the choice, empty for allocations
	Hex        Hex
	Candidates []UnitID
	Total      int // damage to distribute, AllocateDamage only
}

// Answer resumes a pending Decision. Allocation is read for AllocateDamage, Unit otherwise.
type Answer struct {
	Unit       UnitID
	Allocation map[UnitID]int
}

// Pending returns the decision the game is waiting on, or nil.
func (gs *GameState) Pending() *Decision {
	return gs.pending
}

func (gs *GameState) decides(f Faction) bool {
	return gs.deciders[f]
}

func (gs *GameState) suspend(d *Decision) {
	gs.pending = d
	gs.logf("Waiting on %s to decide %s at %s", d.Faction, d.Kind, d.Hex)
}

// Decide resumes the game with the answer to the pending decision.
func (gs *GameState) Decide(a Answer) error {
	d := gs.pending
	if d == nil {
		return ErrNoDecision
	}
	switch d.Kind {
	case AllocateDamage:
		return gs.resumeAllocation(d, a.Allocation)
	case ChooseAbilityTarget:
		return gs.resumeChoice(d, a.Unit, gs.resumeAbilityTarget)
	case ChooseChargeTarget:
		return gs.resumeChoice(d, a.Unit, gs.resumeChargeTarget)
	case ChooseForwardUnit:
		return gs.resumeChoice(d, a.Unit, gs.resumeForwardUnit)
	default:
		panic(fmt.Sprintf("unhandled decision kind %d", d.Kind))
	}
}

// resumeChoice validates a single-unit answer. A candidate that died in the meantime drops
// the action instead of applying it.
func (gs *GameState) resumeChoice(d *Decision, id UnitID, apply func(d *Decision, u *Unit)) error {
	if !slices.Contains(d.Candidates, id) {
		return gs.reject(ErrInvalidDecision, "%s is not a candidate for %s", id, d.Kind)
	}
	gs.pending = nil
	u := gs.Unit(id)
	if u == nil {
		gs.logf("%s — target no longer valid, action dropped", d.Kind)
	}
	apply(d, u)
	return nil
}

func (gs *GameState) resumeAllocation(d *Decision, alloc map[UnitID]int) error {
	sum := 0
	for id, amount := range alloc {
		if !slices.Contains(d.Candidates, id) {
			return gs.reject(ErrInvalidDecision, "%s is not a target of this strike", id)
		}
		if amount < 0 {
			return gs.reject(ErrInvalidDecision, "allocation contains a negative amount")
		}
		sum += amount
	}
	if sum != d.Total {
		return gs.reject(ErrInvalidDecision, "allocation sums to %d, expected %d", sum, d.Total)
	}
	gs.pending = nil
	gs.applyAllocation(d.Candidates, alloc)
	gs.strikeNext++
	gs.continueResolution()
	return nil
}

func unitIDs(units []*Unit) []UnitID {
	ids := make([]UnitID, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	return ids
}
