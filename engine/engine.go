package engine

import (
	"hexkeep/experiments/metrics"
	"hexkeep/game"
)

// MaxActionsPerPhase bounds how many actions one agent may take before its phase is closed.
const MaxActionsPerPhase = 200

type Engine interface {
	// Run plays a game till there's a winner or the round limit is reached
	Run() (winner game.Faction, gameMetric metrics.GameMetric)
}
