package game

import "golang.org/x/exp/slices"

// LegalMoves returns the destinations a unit may choose right now.
func (gs *GameState) LegalMoves(id UnitID) []Hex {
	u := gs.Unit(id)
	if u == nil {
		return nil
	}
	return gs.legalMoves(u)
}

func (gs *GameState) legalMoves(u *Unit) []Hex {
	if gs.IsEngaged(u) && u.Type != Elephants {
		return nil
	}
	switch u.Type {
	case Commander:
		return gs.forwardHexes(u)
	case Balloon:
		return gs.flightHexes(u)
	case Militia, Spears, Archers, Mounted, Cannon, Muskets, Jesters, BatteringRam, Elephants:
		return gs.stepHexes(u, 1)
	default:
		panic("unhandled unit type " + u.Type.String())
	}
}

// stepHexes is a BFS out to radius hexes. The start hex is always included.
func (gs *GameState) stepHexes(u *Unit, radius int) []Hex {
	start := u.Pos
	depth := map[Hex]int{start: 0}
	queue := []Hex{start}
	moves := []Hex{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if depth[current] >= radius {
			continue
		}
		// entering an enemy hex ends movement
		if current != start && len(gs.enemiesAt(current, u.Faction)) > 0 {
			continue
		}
		for _, next := range Adjacent(current) {
			if _, seen := depth[next]; seen {
				continue
			}
			depth[next] = depth[current] + 1
			if gs.friendlyCount(next, u.Faction) >= gs.Rules.StackLimit {
				continue
			}
			moves = append(moves, next)
			queue = append(queue, next)
		}
	}
	return moves
}

// forwardHexes lists hexes holding other friendly units within two hexes of a Commander.
func (gs *GameState) forwardHexes(u *Unit) []Hex {
	var hexes []Hex
	for _, other := range gs.factionUnits(u.Faction) {
		if other.ID == u.ID {
			continue
		}
		d := Distance(u.Pos, other.Pos)
		if d > 0 && d <= 2 && !slices.Contains(hexes, other.Pos) {
			hexes = append(hexes, other.Pos)
		}
	}
	return hexes
}

// flightHexes lists every empty hex outside the enemy castle row.
func (gs *GameState) flightHexes(u *Unit) []Hex {
	var hexes []Hex
	for _, h := range AllHexes() {
		if h == u.Pos || h.Row == EnemyCastleRow(u.Faction) {
			continue
		}
		if len(gs.UnitsAt(h)) == 0 {
			hexes = append(hexes, h)
		}
	}
	return hexes
}

// checkMover validates that u may be selected by the faction in its movement phase.
func (gs *GameState) checkMover(id UnitID) (*Unit, error) {
	if err := gs.ready(); err != nil {
		return nil, err
	}
	faction := gs.Phase.MovingFaction()
	if faction == NoFaction {
		return nil, gs.reject(ErrWrongPhase, "units can only move in a movement phase, not %s", gs.Phase)
	}
	u := gs.Unit(id)
	if u == nil {
		return nil, gs.reject(ErrUnknownUnit, "selected unit is no longer on the board")
	}
	if u.Faction != faction {
		return nil, gs.reject(ErrNotYourUnit, "%s belongs to %s", gs.DisplayName(u), u.Faction)
	}
	if gs.CommanderTarget != "" && id != gs.CommanderTarget && id != gs.forwardBy {
		return nil, gs.reject(ErrLocked, "%s cannot act while a Forward! order is open", gs.DisplayName(u))
	}
	if gs.PendingSecondMove != "" && id != gs.PendingSecondMove {
		return nil, gs.reject(ErrLocked, "%s must finish its move first", gs.DisplayName(gs.Unit(gs.PendingSecondMove)))
	}
	if gs.Activated[id] && id != gs.CommanderTarget {
		return nil, gs.reject(ErrAlreadyActed, "%s already acted this phase", gs.DisplayName(u))
	}
	return u, nil
}

// Actors returns the units the moving faction may act with right now. An open Forward! order or
// a Mounted unit's pending second move narrows this to a single unit.
func (gs *GameState) Actors() []*Unit {
	faction := gs.Phase.MovingFaction()
	if faction == NoFaction || gs.pending != nil {
		return nil
	}
	if u := gs.Unit(gs.CommanderTarget); u != nil {
		return []*Unit{u}
	}
	if u := gs.Unit(gs.PendingSecondMove); u != nil {
		return []*Unit{u}
	}
	var units []*Unit
	for _, u := range gs.factionUnits(faction) {
		if !gs.Activated[u.ID] {
			units = append(units, u)
		}
	}
	return units
}

// Select makes a unit the active one and computes its legal destinations.
func (gs *GameState) Select(id UnitID) error {
	u, err := gs.checkMover(id)
	if err != nil {
		return err
	}
	if id == gs.forwardBy && gs.CommanderTarget != "" {
		// re-selecting the Commander keeps the open order
		return nil
	}
	gs.Selected = id
	gs.Legal = gs.legalMoves(u)
	return nil
}

// Move sends the unit to dest, which must be one of its legal destinations.
func (gs *GameState) Move(id UnitID, dest Hex) error {
	u, err := gs.checkMover(id)
	if err != nil {
		return err
	}
	if gs.CommanderTarget != "" && id == gs.forwardBy {
		return gs.reject(ErrIllegalMove, "%s already issued Forward!; move the chosen unit", gs.DisplayName(u))
	}
	legal := gs.legalMoves(u)
	if !slices.Contains(legal, dest) {
		return gs.reject(ErrIllegalMove, "%s cannot move to %s", gs.DisplayName(u), dest)
	}

	switch {
	case id == gs.CommanderTarget:
		commander := gs.Unit(gs.forwardBy)
		gs.relocate(u, dest)
		gs.CommanderTarget = ""
		gs.forwardBy = ""
		if commander != nil {
			gs.Activated[commander.ID] = true
		}
		gs.clearSelection()
	case u.Type == Commander:
		gs.issueForward(u, dest)
	default:
		gs.applyMove(u, dest)
		gs.finishActivation(u)
	}
	return nil
}

// Skip ends a unit's activation without moving it, or cancels an open Forward! order.
func (gs *GameState) Skip(id UnitID) error {
	u, err := gs.checkMover(id)
	if err != nil {
		return err
	}
	if gs.CommanderTarget != "" {
		gs.logf("%s — Forward! order cancelled", gs.DisplayName(gs.Unit(gs.forwardBy)))
		gs.CommanderTarget = ""
		gs.forwardBy = ""
		gs.clearSelection()
		return nil
	}
	gs.Activated[id] = true
	gs.PendingSecondMove = ""
	gs.clearSelection()
	gs.logf("%s — holds position at %s", gs.DisplayName(u), u.Pos)
	return nil
}

// EndPhase closes the current movement phase.
func (gs *GameState) EndPhase() error {
	if err := gs.ready(); err != nil {
		return err
	}
	switch gs.Phase {
	case Faction1MovePhase:
		gs.closeMovement()
		gs.transition(Faction2MovePhase)
		return nil
	case Faction2MovePhase:
		gs.closeMovement()
		gs.beginTargeting()
		return nil
	default:
		return gs.reject(ErrWrongPhase, "cannot end %s", gs.Phase)
	}
}

func (gs *GameState) closeMovement() {
	if gs.PendingSecondMove != "" {
		gs.Activated[gs.PendingSecondMove] = true
		gs.PendingSecondMove = ""
	}
	gs.CommanderTarget = ""
	gs.forwardBy = ""
	gs.clearSelection()
	clear(gs.Activated)
}

func (gs *GameState) clearSelection() {
	gs.Selected = ""
	gs.Legal = nil
}

// applyMove relocates u and fires engagement-entry effects.
func (gs *GameState) applyMove(u *Unit, dest Hex) {
	from := u.Pos
	steps := Distance(from, dest)
	u.Pos = dest
	u.Moved = true
	u.movesThisTurn++
	u.stepsThisTurn += steps
	gs.logf("%s — moves %s -> %s", gs.DisplayName(u), from, dest)

	if steps == 0 || !gs.IsEngaged(u) {
		return
	}
	gs.logf("%s — engages the enemy at %s", gs.DisplayName(u), dest)
	if u.Type == Mounted && u.movesThisTurn == 2 && u.stepsThisTurn == 2 {
		gs.charge(u)
	}
}

// relocate carries out a Forward! order. It is the Commander's action, so the unit's own move
// counters are untouched and it cannot charge.
func (gs *GameState) relocate(u *Unit, dest Hex) {
	from := u.Pos
	u.Pos = dest
	u.Moved = true
	gs.logf("%s — moves %s -> %s on Forward!", gs.DisplayName(u), from, dest)
	if from != dest && gs.IsEngaged(u) {
		gs.logf("%s — engages the enemy at %s", gs.DisplayName(u), dest)
	}
}

// finishActivation marks u as acted, except after a Mounted unit's first move.
func (gs *GameState) finishActivation(u *Unit) {
	if !u.Alive() {
		gs.PendingSecondMove = ""
		gs.clearSelection()
		return
	}
	if u.Type == Mounted && u.movesThisTurn == 1 {
		gs.PendingSecondMove = u.ID
		gs.Selected = u.ID
		gs.Legal = gs.legalMoves(u)
		return
	}
	gs.Activated[u.ID] = true
	gs.PendingSecondMove = ""
	gs.clearSelection()
}

// charge applies the Mounted charge bonus unless an enemy Spears unit counters it.
func (gs *GameState) charge(u *Unit) {
	for _, h := range Adjacent(u.Pos) {
		for _, enemy := range gs.enemiesAt(h, u.Faction) {
			if enemy.Type == Spears && !gs.IsEngaged(enemy) {
				u.takeDamage(gs.Rules.CounterChargeDamage)
				gs.logf("%s — Counter Charge — %s takes %d %s at %s",
					gs.DisplayName(enemy), gs.DisplayName(u), gs.Rules.CounterChargeDamage, gs.hpText(u), u.Pos)
				gs.removeDestroyed()
				return
			}
		}
	}

	targets := gs.enemiesAt(u.Pos, u.Faction)
	if len(targets) > 1 && gs.decides(u.Faction) {
		gs.suspend(&Decision{
			Kind:       ChooseChargeTarget,
			Faction:    u.Faction,
			Actor:      u.ID,
			Hex:        u.Pos,
			Candidates: unitIDs(targets),
		})
		return
	}
	gs.applyCharge(u, targets[0])
}

func (gs *GameState) applyCharge(u, target *Unit) {
	target.takeDamage(gs.Rules.ChargeBonus)
	gs.logf("%s — Charge — %s takes %d %s at %s",
		gs.DisplayName(u), gs.DisplayName(target), gs.Rules.ChargeBonus, gs.hpText(target), target.Pos)
	gs.removeDestroyed()
}

func (gs *GameState) resumeChargeTarget(d *Decision, target *Unit) {
	u := gs.Unit(d.Actor)
	if u == nil || target == nil {
		return
	}
	gs.applyCharge(u, target)
}

// issueForward starts a Commander's Forward! order on the friendly units at h.
func (gs *GameState) issueForward(commander *Unit, h Hex) {
	var candidates []*Unit
	for _, other := range gs.UnitsAt(h) {
		if other.Faction == commander.Faction && other.ID != commander.ID {
			candidates = append(candidates, other)
		}
	}
	gs.forwardBy = commander.ID
	gs.logf("%s — Forward! — orders the unit at %s", gs.DisplayName(commander), h)
	if len(candidates) > 1 && gs.decides(commander.Faction) {
		gs.suspend(&Decision{
			Kind:       ChooseForwardUnit,
			Faction:    commander.Faction,
			Actor:      commander.ID,
			Hex:        h,
			Candidates: unitIDs(candidates),
		})
		return
	}
	gs.orderForward(candidates[0])
}

func (gs *GameState) orderForward(target *Unit) {
	gs.CommanderTarget = target.ID
	gs.Selected = target.ID
	gs.Legal = gs.legalMoves(target)
	gs.logf("%s — receives Forward! at %s", gs.DisplayName(target), target.Pos)
}

func (gs *GameState) resumeForwardUnit(d *Decision, target *Unit) {
	if target == nil || gs.Unit(d.Actor) == nil {
		gs.forwardBy = ""
		return
	}
	gs.orderForward(target)
}
