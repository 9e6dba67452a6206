package game

// Group is one hex where living units of both factions meet.
type Group struct {
	Hex      Hex
	Faction1 []*Unit
	Faction2 []*Unit
}

func (g Group) side(f Faction) []*Unit {
	if f == Faction1 {
		return g.Faction1
	}
	return g.Faction2
}

// strike is one side's combat damage against the other side of a group.
type strike struct {
	hex      Hex
	attacker Faction
	targets  []UnitID
	total    int
}

// EngagedGroups returns every contested hex in board order.
func (gs *GameState) EngagedGroups() []Group {
	var groups []Group
	for _, h := range AllHexes() {
		g := Group{Hex: h}
		for _, u := range gs.UnitsAt(h) {
			if u.Faction == Faction1 {
				g.Faction1 = append(g.Faction1, u)
			} else {
				g.Faction2 = append(g.Faction2, u)
			}
		}
		if len(g.Faction1) > 0 && len(g.Faction2) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// SideDamage is the combined combat damage of units.
func (gs *GameState) SideDamage(units []*Unit) int {
	total := 0
	for _, u := range units {
		total += gs.Rules.combatDamage(u.Type)
	}
	return total
}

// startResolution opens a resolution pass: every engaged unit is marked as having fought
// before any damage lands.
func (gs *GameState) startResolution() {
	clear(gs.Fought)
	gs.strikes = nil
	gs.strikeNext = 0
	for _, g := range gs.EngagedGroups() {
		for _, f := range Factions {
			for _, u := range g.side(f) {
				gs.Fought[u.ID] = true
			}
		}
		for _, f := range Factions {
			gs.strikes = append(gs.strikes, strike{
				hex:      g.Hex,
				attacker: f,
				targets:  unitIDs(g.side(f.Opponent())),
				total:    gs.SideDamage(g.side(f)),
			})
		}
	}
	gs.continueResolution()
}

// continueResolution runs the automated sub-phases until the game needs input, the round
// ends, or the game is over.
func (gs *GameState) continueResolution() {
	for gs.pending == nil {
		switch gs.Phase {
		case ResolutionCombatPhase:
			for gs.strikeNext < len(gs.strikes) {
				if !gs.applyStrike(gs.strikes[gs.strikeNext]) {
					return
				}
				gs.strikeNext++
			}
			gs.strikes = nil
			gs.removeDestroyed()
			gs.transition(ResolutionMeleePhase)
		case ResolutionMeleePhase:
			gs.resolveAbilities(meleePass)
			gs.transition(ResolutionRangedPhase)
		case ResolutionRangedPhase:
			gs.resolveAbilities(rangedPass)
			gs.transition(ResolutionCastlePhase)
		case ResolutionCastlePhase:
			gs.applyCastleDamage()
			if outcome := gs.checkWinner(); outcome != nil {
				gs.Outcome = outcome
				gs.transition(GameOverPhase)
				gs.logf("%s wins — %s", outcome.Winner, outcome.Reason)
				return
			}
			gs.nextRound()
			return
		default:
			return
		}
	}
}

// applyStrike lands one side's damage. It returns false when it suspended on an allocation.
func (gs *GameState) applyStrike(s strike) bool {
	var targets []*Unit
	for _, id := range s.targets {
		if u := gs.Unit(id); u != nil {
			targets = append(targets, u)
		}
	}
	switch {
	case len(targets) == 0 || s.total <= 0:
		return true
	case len(targets) == 1:
		gs.hit(s.attacker, targets[0], s.total)
		return true
	case gs.decides(s.attacker):
		gs.suspend(&Decision{
			Kind:       AllocateDamage,
			Faction:    s.attacker,
			Hex:        s.hex,
			Candidates: unitIDs(targets),
			Total:      s.total,
		})
		return false
	default:
		gs.applyAllocation(unitIDs(targets), EvenSplit(unitIDs(targets), s.total))
		return true
	}
}

// EvenSplit divides total as evenly as possible; the remainder goes one point each to the
// first targets in order.
func EvenSplit(targets []UnitID, total int) map[UnitID]int {
	alloc := make(map[UnitID]int, len(targets))
	if len(targets) == 0 {
		return alloc
	}
	share := total / len(targets)
	rest := total % len(targets)
	for i, id := range targets {
		alloc[id] = share
		if i < rest {
			alloc[id]++
		}
	}
	return alloc
}

// applyAllocation applies exactly the given amounts, skipping non-positive entries and units
// that are not candidates.
func (gs *GameState) applyAllocation(candidates []UnitID, alloc map[UnitID]int) {
	for _, id := range candidates {
		amount := alloc[id]
		if amount <= 0 {
			continue
		}
		u := gs.Unit(id)
		if u == nil {
			continue
		}
		gs.hit(u.Faction.Opponent(), u, amount)
	}
}

func (gs *GameState) hit(attacker Faction, u *Unit, amount int) {
	u.takeDamage(amount)
	gs.logf("%s — combat — %s takes %d %s at %s", attacker, gs.DisplayName(u), amount, gs.hpText(u), u.Pos)
}

// SplitDuel is the manual override for two engaged combatants: a takes d of the 2 points,
// b takes the rest.
func (gs *GameState) SplitDuel(a, b UnitID, d int) error {
	if err := gs.ready(); err != nil {
		return err
	}
	if gs.Phase == SetupPhase {
		return gs.reject(ErrWrongPhase, "no combat during setup")
	}
	if d < 0 || d > 2 {
		return gs.reject(ErrInvalidDecision, "duel split %d is outside 0..2", d)
	}
	ua, ub := gs.Unit(a), gs.Unit(b)
	if ua == nil || ub == nil {
		return gs.reject(ErrUnknownUnit, "duel combatant no longer on the board")
	}
	if ua.Pos != ub.Pos || ua.Faction == ub.Faction {
		return gs.reject(ErrInvalidTarget, "%s and %s are not engaged with each other", gs.DisplayName(ua), gs.DisplayName(ub))
	}
	gs.hit(ub.Faction, ua, d)
	gs.hit(ua.Faction, ub, 2-d)
	gs.removeDestroyed()
	return nil
}
