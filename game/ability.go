package game

import (
	"golang.org/x/exp/slices"

	"hexkeep/utils"
)

// Selection is a recorded ability target: a unit, or a hex for area abilities.
type Selection struct {
	Unit   UnitID
	Hex    Hex
	ForHex bool
}

// TargetingSession walks the units that need an explicit ability target, one faction at a time.
type TargetingSession struct {
	Player  Faction
	Current UnitID
	queues  map[Faction][]UnitID
}

type abilityPass int

const (
	meleePass abilityPass = iota
	rangedPass
)

// AbilityName returns the name of a unit type's resolution ability, or "" if it has none.
func AbilityName(t UnitType) string {
	switch t {
	case Archers, Cannon, Muskets:
		return "Ranged"
	case Spears:
		return "Pierce"
	case Jesters:
		return "Taunt"
	default:
		return ""
	}
}

func passOf(t UnitType) (abilityPass, bool) {
	switch t {
	case Spears, Jesters:
		return meleePass, true
	case Archers, Cannon, Muskets:
		return rangedPass, true
	case Militia, Mounted, Commander, Balloon, BatteringRam, Elephants:
		return 0, false
	default:
		panic("unhandled unit type " + t.String())
	}
}

// AbilityTargets enumerates the enemies u's ability can reach, in board order.
func (gs *GameState) AbilityTargets(u *Unit) []*Unit {
	var targets []*Unit
	for _, enemy := range gs.factionUnits(u.Faction.Opponent()) {
		d := Distance(u.Pos, enemy.Pos)
		switch u.Type {
		case Archers:
			if d > 0 && d <= 2 {
				targets = append(targets, enemy)
			}
		case Cannon:
			if !u.Moved && d > 0 && d <= 2 {
				targets = append(targets, enemy)
			}
		case Muskets:
			if !u.Moved && d > 0 && enemy.Pos.Col == u.Pos.Col {
				targets = append(targets, enemy)
			}
		case Spears, Jesters:
			if d == 1 {
				targets = append(targets, enemy)
			}
		}
	}
	return targets
}

// TargetHexes lists the distinct hexes holding u's ability targets.
func (gs *GameState) TargetHexes(u *Unit) []Hex {
	var hexes []Hex
	for _, t := range gs.AbilityTargets(u) {
		if !slices.Contains(hexes, t.Pos) {
			hexes = append(hexes, t.Pos)
		}
	}
	return hexes
}

// needsSelection reports whether u has more than one way to use its ability.
func (gs *GameState) needsSelection(u *Unit) bool {
	if gs.IsEngaged(u) {
		return false
	}
	switch u.Type {
	case Cannon:
		return len(gs.TargetHexes(u)) > 1
	case Archers, Spears, Jesters:
		return len(gs.AbilityTargets(u)) > 1
	default:
		return false
	}
}

// beginTargeting opens the AbilityTargeting phase, or goes straight to resolution.
func (gs *GameState) beginTargeting() {
	clear(gs.Selections)
	session := &TargetingSession{queues: make(map[Faction][]UnitID)}
	for _, u := range gs.Units {
		if u.Alive() && gs.needsSelection(u) {
			session.queues[u.Faction] = append(session.queues[u.Faction], u.ID)
		}
	}
	switch {
	case len(session.queues[Faction2]) > 0:
		session.Player = Faction2
	case len(session.queues[Faction1]) > 0:
		session.Player = Faction1
	default:
		gs.transition(ResolutionCombatPhase)
		gs.startResolution()
		return
	}
	session.Current = session.queues[session.Player][0]
	gs.Targeting = session
	gs.transition(AbilityTargetingPhase)
	gs.logf("%s — choose a target", gs.DisplayName(gs.Unit(session.Current)))
}

// TargetHex records the current targeting unit's choice of hex.
func (gs *GameState) TargetHex(h Hex) error {
	if err := gs.ready(); err != nil {
		return err
	}
	if gs.Phase != AbilityTargetingPhase || gs.Targeting == nil {
		return gs.reject(ErrWrongPhase, "no ability is waiting for a target")
	}
	u := gs.Unit(gs.Targeting.Current)
	if u == nil {
		gs.logf("targeting unit no longer on the board, skipped")
		gs.advanceTargeting()
		return ErrUnknownUnit
	}
	var here []*Unit
	for _, t := range gs.AbilityTargets(u) {
		if t.Pos == h {
			here = append(here, t)
		}
	}
	if len(here) == 0 {
		return gs.reject(ErrInvalidTarget, "%s — %s — no valid target at %s", gs.DisplayName(u), AbilityName(u.Type), h)
	}

	switch {
	case u.Type == Cannon:
		gs.Selections[u.ID] = Selection{Hex: h, ForHex: true}
	case len(here) > 1 && gs.decides(u.Faction):
		gs.suspend(&Decision{
			Kind:       ChooseAbilityTarget,
			Faction:    u.Faction,
			Actor:      u.ID,
			Hex:        h,
			Candidates: unitIDs(here),
		})
		return nil
	default:
		gs.Selections[u.ID] = Selection{Unit: here[0].ID}
	}
	gs.logf("%s — %s — aims at %s", gs.DisplayName(u), AbilityName(u.Type), h)
	gs.advanceTargeting()
	return nil
}

// SkipTarget leaves the current unit on its default target.
func (gs *GameState) SkipTarget() error {
	if err := gs.ready(); err != nil {
		return err
	}
	if gs.Phase != AbilityTargetingPhase || gs.Targeting == nil {
		return gs.reject(ErrWrongPhase, "no ability is waiting for a target")
	}
	gs.advanceTargeting()
	return nil
}

func (gs *GameState) resumeAbilityTarget(d *Decision, target *Unit) {
	if target != nil {
		gs.Selections[d.Actor] = Selection{Unit: target.ID}
	}
	gs.advanceTargeting()
}

// advanceTargeting moves the session to the next unit, the other faction, or resolution.
func (gs *GameState) advanceTargeting() {
	s := gs.Targeting
	queue := utils.Without(s.queues[s.Player], s.Current)
	s.queues[s.Player] = queue

	if len(queue) == 0 {
		other := s.Player.Opponent()
		if len(s.queues[other]) == 0 {
			gs.Targeting = nil
			gs.transition(ResolutionCombatPhase)
			gs.startResolution()
			return
		}
		s.Player = other
	}
	s.Current = s.queues[s.Player][0]
	gs.logf("%s — choose a target", gs.DisplayName(gs.Unit(s.Current)))
}

// resolveAbilities runs one ability pass over every eligible unit.
func (gs *GameState) resolveAbilities(pass abilityPass) {
	actors := make([]*Unit, len(gs.Units))
	copy(actors, gs.Units)
	for _, u := range actors {
		p, ok := passOf(u.Type)
		if !ok || p != pass || !u.Alive() || gs.Fought[u.ID] || gs.IsEngaged(u) {
			continue
		}
		gs.useAbility(u)
	}
	gs.removeDestroyed()
}

func (gs *GameState) useAbility(u *Unit) {
	targets := gs.AbilityTargets(u)
	if len(targets) == 0 {
		return
	}
	if u.Type == Muskets {
		gs.volley(u, targets)
		return
	}

	sel, chosen := gs.Selections[u.ID]
	if !chosen {
		sel = gs.defaultSelection(u, targets)
	}
	if sel.ForHex {
		var here []*Unit
		for _, t := range targets {
			if t.Pos == sel.Hex {
				here = append(here, t)
			}
		}
		if len(here) == 0 {
			gs.logf("%s — %s — target no longer valid at %s", gs.DisplayName(u), AbilityName(u.Type), sel.Hex)
			return
		}
		gs.bombard(u, here)
		return
	}
	i := slices.IndexFunc(targets, func(t *Unit) bool { return t.ID == sel.Unit })
	if i < 0 {
		gs.logf("%s — %s — target no longer valid", gs.DisplayName(u), AbilityName(u.Type))
		return
	}
	target := targets[i]

	switch u.Type {
	case Archers:
		gs.shoot(u, target)
	case Spears:
		gs.pierce(u, target)
	case Jesters:
		gs.taunt(u, target)
	}
}

// defaultSelection is used when no explicit target was recorded.
func (gs *GameState) defaultSelection(u *Unit, targets []*Unit) Selection {
	if u.Type == Cannon {
		return Selection{Hex: targets[0].Pos, ForHex: true}
	}
	if u.Type == Archers && u.LastTarget != "" {
		for _, t := range targets {
			if t.ID == u.LastTarget {
				return Selection{Unit: t.ID}
			}
		}
	}
	return Selection{Unit: targets[0].ID}
}

// ArcherDamage is the damage u would deal to target.
func (gs *GameState) ArcherDamage(u, target *Unit) int {
	damage := gs.Rules.ArcherDamage
	if u.Moved {
		damage--
	}
	if target.ID != u.LastTarget {
		damage--
	}
	return max(damage, 0)
}

func (gs *GameState) shoot(u, target *Unit) {
	damage := gs.ArcherDamage(u, target)
	target.takeDamage(damage)
	u.LastTarget = target.ID
	gs.logAbilityHit(u, target, damage)
}

func (gs *GameState) bombard(u *Unit, here []*Unit) {
	for _, t := range here {
		t.takeDamage(1)
		gs.logAbilityHit(u, t, 1)
	}
}

func (gs *GameState) volley(u *Unit, targets []*Unit) {
	for _, t := range targets {
		t.takeDamage(1)
		gs.logAbilityHit(u, t, 1)
	}
}

func (gs *GameState) pierce(u, target *Unit) {
	target.takeDamage(1)
	gs.logAbilityHit(u, target, 1)
}

func (gs *GameState) taunt(u, target *Unit) {
	from := target.Pos
	target.Pos = u.Pos
	gs.logf("%s — %s — %s dragged %s -> %s %s",
		gs.DisplayName(u), AbilityName(u.Type), gs.DisplayName(target), from, u.Pos, gs.hpText(target))
}

func (gs *GameState) logAbilityHit(u, target *Unit, damage int) {
	gs.logf("%s — %s — %s takes %d %s at %s",
		gs.DisplayName(u), AbilityName(u.Type), gs.DisplayName(target), damage, gs.hpText(target), target.Pos)
}
