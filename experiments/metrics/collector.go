package metrics

import (
	"sync/atomic"
	"time"

	"hexkeep/game"
)

// GameMetric summarizes one finished (or abandoned) game.
type GameMetric struct {
	Winner        string // faction name, empty on a draw
	Reason        string
	Rounds        int
	CastleDamage1 int // damage taken by Faction1's castle
	CastleDamage2 int
	Losses1       int // Faction1 units destroyed
	Losses2       int
	Actions       int
	Targets       int
	Decisions     int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

type Collector interface {
	Start()
	AddAction()
	AddTarget()
	AddDecision()
	Complete(gs *game.GameState) GameMetric
}

type collector struct {
	startTime time.Time
	actions   atomic.Int32
	targets   atomic.Int32
	decisions atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.actions.Store(0)
	m.targets.Store(0)
	m.decisions.Store(0)
}

func (m *collector) AddAction() {
	m.actions.Add(1)
}

func (m *collector) AddTarget() {
	m.targets.Add(1)
}

func (m *collector) AddDecision() {
	m.decisions.Add(1)
}

func (m *collector) Complete(gs *game.GameState) GameMetric {
	end := time.Now()
	metric := GameMetric{
		Rounds:        gs.Round,
		CastleDamage1: gs.CastleDamage[game.Faction1],
		CastleDamage2: gs.CastleDamage[game.Faction2],
		// a faction's losses are credited to its opponent
		Losses1:   len(gs.Destroyed[game.Faction2]),
		Losses2:   len(gs.Destroyed[game.Faction1]),
		Actions:   int(m.actions.Load()),
		Targets:   int(m.targets.Load()),
		Decisions: int(m.decisions.Load()),
		StartTime: m.startTime,
		EndTime:   end,
		Duration:  end.Sub(m.startTime),
	}
	if outcome := gs.Winner(); outcome != nil {
		metric.Winner = outcome.Winner.String()
		metric.Reason = outcome.Reason
	}
	return metric
}
