package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Outcome describes how a game ended.
type Outcome struct {
	Winner Faction
	Reason string
}

// GameState is the single mutable aggregate of one game. It is not safe for concurrent use.
type GameState struct {
	Rules Rules
	Phase Phase
	Round int
	Units []*Unit // living units, in creation order

	// Destroyed holds removed units keyed by the faction credited with the kill.
	Destroyed        map[Faction][]*Unit
	CastleDamage     map[Faction]int // damage each faction's castle has taken
	PrevCastleDamage map[Faction]int
	Streaks          map[Faction]int // consecutive rounds a faction's castle took more damage
	InstantWin       Faction
	Outcome          *Outcome

	Selected          UnitID
	Legal             []Hex
	Activated         map[UnitID]bool
	PendingSecondMove UnitID
	CommanderTarget   UnitID
	Targeting         *TargetingSession
	Selections        map[UnitID]Selection
	Fought            map[UnitID]bool

	Log []string

	factory    *Factory
	deciders   map[Faction]bool
	pending    *Decision
	forwardBy  UnitID
	strikes    []strike
	strikeNext int
}

type Option func(gs *GameState)

// WithDecider makes the game yield a pending Decision whenever one of the given factions has
// a choice to make. Without it the deterministic fallback is applied.
func WithDecider(factions ...Faction) Option {
	return func(gs *GameState) {
		for _, f := range factions {
			gs.deciders[f] = true
		}
	}
}

func WithFactory(f *Factory) Option {
	return func(gs *GameState) {
		if f != nil {
			gs.factory = f
		}
	}
}

// NewGameState initializes an empty board in the setup phase.
func NewGameState(rules Rules, options ...Option) *GameState {
	gs := &GameState{
		Rules:            rules,
		Phase:            SetupPhase,
		Round:            1,
		Destroyed:        map[Faction][]*Unit{Faction1: {}, Faction2: {}},
		CastleDamage:     map[Faction]int{Faction1: 0, Faction2: 0},
		PrevCastleDamage: map[Faction]int{Faction1: 0, Faction2: 0},
		Streaks:          map[Faction]int{Faction1: 0, Faction2: 0},
		Activated:        make(map[UnitID]bool),
		Selections:       make(map[UnitID]Selection),
		Fought:           make(map[UnitID]bool),
		factory:          NewFactory(rules.MaxHP),
		deciders:         make(map[Faction]bool),
	}
	for _, option := range options {
		option(gs)
	}
	return gs
}

// PlaceUnit creates a unit on the board during setup.
func (gs *GameState) PlaceUnit(t UnitType, f Faction, h Hex) (*Unit, error) {
	if gs.Phase != SetupPhase {
		return nil, gs.reject(ErrWrongPhase, "cannot place %s outside setup", t)
	}
	if !t.Valid() || f.Opponent() == NoFaction {
		return nil, gs.reject(ErrUnknownUnit, "cannot place unknown unit type %d for %s", int(t), f)
	}
	if !InBounds(h) {
		return nil, gs.reject(ErrOutOfBounds, "cannot place %s at %s: off the board", t, h)
	}
	if gs.friendlyCount(h, f) >= gs.Rules.StackLimit {
		return nil, gs.reject(ErrStackFull, "cannot place %s at %s: hex is full", t, h)
	}
	u := gs.factory.Create(t, f, h.Row, h.Col)
	gs.Units = append(gs.Units, u)
	gs.logf("%s — placed for %s at %s", gs.DisplayName(u), f, h)
	return u, nil
}

// Start ends setup and opens the first movement phase.
func (gs *GameState) Start() error {
	if gs.Phase != SetupPhase {
		return gs.reject(ErrWrongPhase, "game already started")
	}
	for _, f := range Factions {
		if len(gs.factionUnits(f)) == 0 {
			return gs.reject(ErrNoUnits, "%s has no units", f)
		}
	}
	gs.transition(Faction1MovePhase)
	return nil
}

// Unit returns the living unit with the given id, or nil.
func (gs *GameState) Unit(id UnitID) *Unit {
	if id == "" {
		return nil
	}
	for _, u := range gs.Units {
		if u.ID == id && u.Alive() {
			return u
		}
	}
	return nil
}

// UnitsAt returns the living units on a hex.
func (gs *GameState) UnitsAt(h Hex) []*Unit {
	var units []*Unit
	for _, u := range gs.Units {
		if u.Alive() && u.Pos == h {
			units = append(units, u)
		}
	}
	return units
}

func (gs *GameState) factionUnits(f Faction) []*Unit {
	var units []*Unit
	for _, u := range gs.Units {
		if u.Alive() && u.Faction == f {
			units = append(units, u)
		}
	}
	return units
}

func (gs *GameState) enemiesAt(h Hex, f Faction) []*Unit {
	var units []*Unit
	for _, u := range gs.UnitsAt(h) {
		if u.Faction != f {
			units = append(units, u)
		}
	}
	return units
}

func (gs *GameState) friendlyCount(h Hex, f Faction) int {
	n := 0
	for _, u := range gs.UnitsAt(h) {
		if u.Faction == f {
			n++
		}
	}
	return n
}

// IsEngaged reports whether u shares its hex with a living enemy.
func (gs *GameState) IsEngaged(u *Unit) bool {
	return len(gs.enemiesAt(u.Pos, u.Faction)) > 0
}

// Winner returns the outcome once the game is over.
func (gs *GameState) Winner() *Outcome {
	return gs.Outcome
}

func (gs *GameState) Over() bool {
	return gs.Phase == GameOverPhase
}

// ready guards every mutating operation.
func (gs *GameState) ready() error {
	if gs.pending != nil {
		return ErrDecisionPending
	}
	if gs.Phase == GameOverPhase {
		return ErrGameOver
	}
	return nil
}

// removeDestroyed moves dead units to the killer's destroyed list.
func (gs *GameState) removeDestroyed() {
	alive := gs.Units[:0]
	for _, u := range gs.Units {
		if u.Alive() {
			alive = append(alive, u)
			continue
		}
		killer := u.Faction.Opponent()
		gs.Destroyed[killer] = append(gs.Destroyed[killer], u)
		gs.logf("%s — destroyed at %s", gs.unitLabel(u), u.Pos)
		gs.forget(u.ID)
	}
	gs.Units = alive
}

// forget drops transient references to a removed unit.
func (gs *GameState) forget(id UnitID) {
	if gs.Selected == id {
		gs.Selected = ""
		gs.Legal = nil
	}
	if gs.PendingSecondMove == id {
		gs.PendingSecondMove = ""
	}
	if gs.CommanderTarget == id || gs.forwardBy == id {
		gs.CommanderTarget = ""
		gs.forwardBy = ""
	}
	delete(gs.Selections, id)
}

// unitLabel names a unit that may already be dead.
func (gs *GameState) unitLabel(u *Unit) string {
	return fmt.Sprintf("%s %s #%d (%s)", u.Type.Symbol(), u.Type.Name(), u.Seq, u.Faction)
}

func (gs *GameState) hpText(u *Unit) string {
	return fmt.Sprintf("(%d/%d HP)", u.HP(), u.MaxHP)
}

func (gs *GameState) logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	gs.Log = append(gs.Log, msg)
	log.Debug().Int("round", gs.Round).Str("phase", gs.Phase.String()).Msg(msg)
}

// reject logs a refused action and returns the matching error.
func (gs *GameState) reject(err error, format string, args ...any) error {
	gs.logf(format, args...)
	return err
}
