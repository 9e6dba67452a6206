package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexkeep/agent"
	"hexkeep/game"
)

func place(t *testing.T, gs *game.GameState, ut game.UnitType, f game.Faction, row, col int) *game.Unit {
	t.Helper()
	u, err := gs.PlaceUnit(ut, f, game.Hex{Row: row, Col: col})
	require.NoError(t, err)
	return u
}

func forwardAgents() map[game.Faction]agent.Agent {
	return map[game.Faction]agent.Agent{
		game.Faction1: agent.NewForward(),
		game.Faction2: agent.NewForward(),
	}
}

// careless answers every decision with nothing.
type careless struct {
	*agent.Forward
}

func (careless) Decide(*game.GameState, *game.Decision) game.Answer {
	return game.Answer{}
}

func TestNewLocal(t *testing.T) {
	gs := game.NewGameState(game.StandardRules())
	require.Panics(t, func() {
		NewLocal(gs, map[game.Faction]agent.Agent{game.Faction1: agent.NewForward()})
	})
}

func TestLocalRun(t *testing.T) {
	t.Run("a battering ram run ends the game", func(t *testing.T) {
		gs := game.NewGameState(game.StandardRules())
		place(t, gs, game.BatteringRam, game.Faction1, 1, 0)
		place(t, gs, game.Militia, game.Faction2, 3, 5)

		winner, metric := NewLocal(gs, forwardAgents()).Run()
		require.Equal(t, game.Faction1, winner)
		require.Equal(t, "Faction1", metric.Winner)
		require.Equal(t, "battering ram breached the castle", metric.Reason)
		require.Equal(t, 1, metric.Rounds)
		require.Equal(t, 2, metric.Actions)
		require.True(t, gs.Over())
	})

	t.Run("the round limit ends a level game as a draw", func(t *testing.T) {
		gs := game.NewGameState(game.StandardRules())
		place(t, gs, game.Militia, game.Faction1, 0, 0)
		place(t, gs, game.Militia, game.Faction2, 5, 5)

		winner, metric := NewLocal(gs, forwardAgents(), WithMaxRounds(3)).Run()
		require.Equal(t, game.NoFaction, winner)
		require.Empty(t, metric.Winner)
		require.Equal(t, 3, metric.Rounds)
		require.Equal(t, 3, metric.CastleDamage1)
		require.Equal(t, 3, metric.CastleDamage2)
		require.False(t, gs.Over())
	})

	t.Run("a bad answer falls back to the even split", func(t *testing.T) {
		gs := game.NewGameState(game.StandardRules(), game.WithDecider(game.Faction1, game.Faction2))
		place(t, gs, game.Militia, game.Faction1, 2, 2)
		first := place(t, gs, game.Mounted, game.Faction2, 2, 2)
		second := place(t, gs, game.Mounted, game.Faction2, 2, 2)

		agents := map[game.Faction]agent.Agent{
			game.Faction1: careless{agent.NewForward()},
			game.Faction2: agent.NewForward(),
		}
		_, metric := NewLocal(gs, agents, WithMaxRounds(1)).Run()
		require.Equal(t, 2, first.Damage)
		require.Equal(t, 1, second.Damage)
		require.Equal(t, 1, metric.Decisions)
		require.Nil(t, gs.Pending())
	})

	t.Run("random agents with decisions play to the end", func(t *testing.T) {
		gs := game.NewGameState(game.StandardRules(), game.WithDecider(game.Faction1, game.Faction2))
		place(t, gs, game.Militia, game.Faction1, 4, 0)
		place(t, gs, game.Mounted, game.Faction1, 4, 2)
		place(t, gs, game.Archers, game.Faction1, 5, 3)
		place(t, gs, game.Commander, game.Faction1, 5, 2)
		place(t, gs, game.Spears, game.Faction2, 1, 2)
		place(t, gs, game.Cannon, game.Faction2, 0, 3)
		place(t, gs, game.Jesters, game.Faction2, 1, 4)
		place(t, gs, game.Balloon, game.Faction2, 0, 0)

		agents := map[game.Faction]agent.Agent{
			game.Faction1: agent.NewRandom(11),
			game.Faction2: agent.NewRandom(12),
		}
		NewLocal(gs, agents, WithMaxRounds(20)).Run()
		require.True(t, gs.Over() || gs.Round > 20)
		require.Nil(t, gs.Pending())
	})

	t.Run("a game that cannot start returns no winner", func(t *testing.T) {
		gs := game.NewGameState(game.StandardRules())
		place(t, gs, game.Militia, game.Faction1, 4, 0)

		winner, _ := NewLocal(gs, forwardAgents()).Run()
		require.Equal(t, game.NoFaction, winner)
		require.Equal(t, game.SetupPhase, gs.Phase)
	})
}

func TestFallback(t *testing.T) {
	ids := []game.UnitID{"a", "b"}
	require.Equal(t, map[game.UnitID]int{"a": 2, "b": 1},
		fallback(&game.Decision{Kind: game.AllocateDamage, Candidates: ids, Total: 3}).Allocation)
	require.Equal(t, game.UnitID("a"), fallback(&game.Decision{Kind: game.ChooseChargeTarget, Candidates: ids}).Unit)
}
