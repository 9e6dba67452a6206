package game

import "fmt"

// applyCastleDamage scores unengaged units standing in the enemy castle row. An unengaged
// Battering Ram there wins outright and skips the count for the round.
func (gs *GameState) applyCastleDamage() {
	for _, f := range Factions {
		for _, u := range gs.castleUnits(f) {
			if u.Type == BatteringRam {
				gs.InstantWin = f
				gs.logf("%s — breaches the %s castle at %s", gs.DisplayName(u), f.Opponent(), u.Pos)
				return
			}
		}
	}

	for _, f := range Factions {
		gs.PrevCastleDamage[f] = gs.CastleDamage[f]
	}
	for _, f := range Factions {
		n := len(gs.castleUnits(f))
		if n == 0 {
			continue
		}
		enemy := f.Opponent()
		gs.CastleDamage[enemy] += n
		gs.logf("%s castle takes %d damage (total %d)", enemy, n, gs.CastleDamage[enemy])
	}
}

// castleUnits are f's unengaged living units in the enemy castle row.
func (gs *GameState) castleUnits(f Faction) []*Unit {
	var units []*Unit
	row := EnemyCastleRow(f)
	for _, u := range gs.factionUnits(f) {
		if u.Pos.Row == row && !gs.IsEngaged(u) {
			units = append(units, u)
		}
	}
	return units
}

// checkWinner evaluates the win conditions after castle damage. It advances the streaks, so it
// runs exactly once per round; callers outside resolution use Winner.
func (gs *GameState) checkWinner() *Outcome {
	if gs.InstantWin != NoFaction {
		return &Outcome{Winner: gs.InstantWin, Reason: "battering ram breached the castle"}
	}

	diff := gs.CastleDamage[Faction1] - gs.CastleDamage[Faction2]
	margin := gs.Rules.WinMargin
	switch {
	case diff >= margin:
		return &Outcome{Winner: Faction2, Reason: fmt.Sprintf("%d+ more damage", margin)}
	case diff <= -margin:
		return &Outcome{Winner: Faction1, Reason: fmt.Sprintf("%d+ more damage", margin)}
	case diff > 0:
		gs.Streaks[Faction1]++
		gs.Streaks[Faction2] = 0
	case diff < 0:
		gs.Streaks[Faction2]++
		gs.Streaks[Faction1] = 0
	default:
		gs.Streaks[Faction1] = 0
		gs.Streaks[Faction2] = 0
	}

	for _, f := range Factions {
		if gs.Streaks[f] >= gs.Rules.StreakLength {
			return &Outcome{
				Winner: f.Opponent(),
				Reason: fmt.Sprintf("more damage for %d consecutive rounds", gs.Rules.StreakLength),
			}
		}
	}
	return nil
}

// nextRound resets per-turn state and opens the next round.
func (gs *GameState) nextRound() {
	for _, u := range gs.Units {
		u.Moved = false
		u.LastTarget = ""
		u.movesThisTurn = 0
		u.stepsThisTurn = 0
	}
	clear(gs.Activated)
	clear(gs.Selections)
	gs.PendingSecondMove = ""
	gs.CommanderTarget = ""
	gs.forwardBy = ""
	gs.Targeting = nil
	gs.clearSelection()
	gs.Round++
	gs.transition(Faction1MovePhase)
}
