package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Faction is one of the two sides.
type Faction int

const (
	NoFaction Faction = iota
	Faction1
	Faction2
)

// Factions lists both sides in turn order.
var Factions = []Faction{Faction1, Faction2}

func (f Faction) Opponent() Faction {
	switch f {
	case Faction1:
		return Faction2
	case Faction2:
		return Faction1
	default:
		return NoFaction
	}
}

func (f Faction) String() string {
	switch f {
	case Faction1:
		return "Faction1"
	case Faction2:
		return "Faction2"
	default:
		return "NoFaction"
	}
}

// UnitType is the closed set of unit kinds.
type UnitType int

const (
	Militia UnitType = iota + 1
	Spears
	Archers
	Mounted
	Cannon
	Muskets
	Jesters
	Commander
	Balloon
	BatteringRam
	Elephants
)

// UnitTypes lists the whole catalog in id order.
var UnitTypes = []UnitType{
	Militia, Spears, Archers, Mounted, Cannon, Muskets,
	Jesters, Commander, Balloon, BatteringRam, Elephants,
}

type unitTypeInfo struct {
	name   string
	symbol string
}

var catalog = map[UnitType]unitTypeInfo{
	Militia:      {name: "Militia", symbol: "🛡"},
	Spears:       {name: "Spears", symbol: "🔱"},
	Archers:      {name: "Archers", symbol: "🏹"},
	Mounted:      {name: "Mounted", symbol: "🐎"},
	Cannon:       {name: "Cannon", symbol: "💣"},
	Muskets:      {name: "Muskets", symbol: "🔫"},
	Jesters:      {name: "Jesters", symbol: "🃏"},
	Commander:    {name: "Commander", symbol: "👑"},
	Balloon:      {name: "Balloon", symbol: "🎈"},
	BatteringRam: {name: "Battering Ram", symbol: "🐏"},
	Elephants:    {name: "Elephants", symbol: "🐘"},
}

func (t UnitType) Valid() bool {
	_, ok := catalog[t]
	return ok
}

func (t UnitType) Name() string {
	if info, ok := catalog[t]; ok {
		return info.name
	}
	return "Unknown"
}

func (t UnitType) Symbol() string {
	if info, ok := catalog[t]; ok {
		return info.symbol
	}
	return "?"
}

func (t UnitType) String() string {
	return t.Name()
}

// ParseUnitType looks a type up by display name.
func ParseUnitType(name string) (UnitType, bool) {
	for _, t := range UnitTypes {
		if catalog[t].name == name {
			return t, true
		}
	}
	return 0, false
}

// UnitID is the identity token of a unit.
type UnitID string

// Unit is a piece on the board.
type Unit struct {
	ID         UnitID
	Type       UnitType
	Faction    Faction
	Pos        Hex
	Damage     int
	MaxHP      int
	Moved      bool
	LastTarget UnitID // "" when the unit has no remembered target
	Color      string
	Seq        int

	movesThisTurn int // movement actions spent this turn
	stepsThisTurn int // hex distance covered this turn
}

func (u *Unit) Alive() bool {
	return u.Damage < u.MaxHP
}

func (u *Unit) HP() int {
	return max(u.MaxHP-u.Damage, 0)
}

func (u *Unit) takeDamage(amount int) {
	if amount <= 0 {
		return
	}
	u.Damage += amount
}

var palettes = map[Faction][]string{
	Faction1: {"#1f4e9c", "#2f7fd1", "#4aa3df", "#1b998b", "#5b5ea6", "#3d5a80"},
	Faction2: {"#b22222", "#d9534f", "#e07a1f", "#a4343a", "#c0392b", "#8e2c48"},
}

type seqKey struct {
	faction  Faction
	unitType UnitType
}

// Factory creates units for one game. It owns the color and sequence counters.
type Factory struct {
	colorIndex map[Faction]int
	sequences  map[seqKey]int
	maxHP      int
}

func NewFactory(maxHP int) *Factory {
	return &Factory{
		colorIndex: make(map[Faction]int),
		sequences:  make(map[seqKey]int),
		maxHP:      maxHP,
	}
}

// Create allocates a fresh unit. Sequence numbers are never reused.
func (f *Factory) Create(t UnitType, faction Faction, row, col int) *Unit {
	palette := palettes[faction]
	color := ""
	if len(palette) > 0 {
		color = palette[f.colorIndex[faction]%len(palette)]
		f.colorIndex[faction]++
	}
	key := seqKey{faction: faction, unitType: t}
	f.sequences[key]++

	return &Unit{
		ID:      UnitID(uuid.NewString()),
		Type:    t,
		Faction: faction,
		Pos:     Hex{Row: row, Col: col},
		MaxHP:   f.maxHP,
		Color:   color,
		Seq:     f.sequences[key],
	}
}

// DisplayName returns "{symbol} {type}", suffixed with "#{seq}" while another living unit of
// the same faction and type exists.
func (gs *GameState) DisplayName(u *Unit) string {
	if u == nil {
		return "?"
	}
	base := fmt.Sprintf("%s %s", u.Type.Symbol(), u.Type.Name())
	same := 0
	for _, other := range gs.Units {
		if other.Alive() && other.Faction == u.Faction && other.Type == u.Type {
			same++
		}
	}
	if same > 1 {
		return fmt.Sprintf("%s #%d", base, u.Seq)
	}
	return base
}
