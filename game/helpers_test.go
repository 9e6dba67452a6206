package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGame(options ...Option) *GameState {
	return NewGameState(StandardRules(), options...)
}

func place(t *testing.T, gs *GameState, ut UnitType, f Faction, row, col int) *Unit {
	t.Helper()
	u, err := gs.PlaceUnit(ut, f, Hex{Row: row, Col: col})
	require.NoError(t, err)
	return u
}

func start(t *testing.T, gs *GameState) {
	t.Helper()
	require.NoError(t, gs.Start())
}

// toResolution ends both movement phases of the current round.
func toResolution(t *testing.T, gs *GameState) {
	t.Helper()
	require.NoError(t, gs.EndPhase())
	require.NoError(t, gs.EndPhase())
}

func logContains(gs *GameState, fragment string) bool {
	for _, line := range gs.Log {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}
