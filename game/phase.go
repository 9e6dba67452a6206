package game

// Phase is a state of the turn state machine.
type Phase int

const (
	SetupPhase Phase = iota
	Faction1MovePhase
	Faction2MovePhase
	AbilityTargetingPhase
	ResolutionCombatPhase
	ResolutionMeleePhase
	ResolutionRangedPhase
	ResolutionCastlePhase
	GameOverPhase
)

var phaseNames = map[Phase]string{
	SetupPhase:            "Setup",
	Faction1MovePhase:     "Faction1Move",
	Faction2MovePhase:     "Faction2Move",
	AbilityTargetingPhase: "AbilityTargeting",
	ResolutionCombatPhase: "ResolutionCombat",
	ResolutionMeleePhase:  "ResolutionMelee",
	ResolutionRangedPhase: "ResolutionRanged",
	ResolutionCastlePhase: "ResolutionCastle",
	GameOverPhase:         "GameOver",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

var transitions = map[Phase][]Phase{
	SetupPhase:            {Faction1MovePhase},
	Faction1MovePhase:     {Faction2MovePhase},
	Faction2MovePhase:     {AbilityTargetingPhase, ResolutionCombatPhase},
	AbilityTargetingPhase: {ResolutionCombatPhase},
	ResolutionCombatPhase: {ResolutionMeleePhase},
	ResolutionMeleePhase:  {ResolutionRangedPhase},
	ResolutionRangedPhase: {ResolutionCastlePhase},
	ResolutionCastlePhase: {Faction1MovePhase, GameOverPhase},
	GameOverPhase:         {},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// MovingFaction returns the faction acting in a movement phase.
func (p Phase) MovingFaction() Faction {
	switch p {
	case Faction1MovePhase:
		return Faction1
	case Faction2MovePhase:
		return Faction2
	default:
		return NoFaction
	}
}

func (p Phase) IsResolution() bool {
	switch p {
	case ResolutionCombatPhase, ResolutionMeleePhase, ResolutionRangedPhase, ResolutionCastlePhase:
		return true
	default:
		return false
	}
}

// transition moves the machine to the next phase. An illegal edge is a programming defect.
func (gs *GameState) transition(to Phase) {
	if !CanTransition(gs.Phase, to) {
		panic("illegal phase transition " + gs.Phase.String() + " -> " + to.String())
	}
	gs.Phase = to
	gs.logf("Round %d — phase %s", gs.Round, to)
}
