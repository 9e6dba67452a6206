package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexkeep/game"
)

func newGame(t *testing.T, options ...game.Option) *game.GameState {
	t.Helper()
	return game.NewGameState(game.StandardRules(), options...)
}

func place(t *testing.T, gs *game.GameState, ut game.UnitType, f game.Faction, row, col int) *game.Unit {
	t.Helper()
	u, err := gs.PlaceUnit(ut, f, game.Hex{Row: row, Col: col})
	require.NoError(t, err)
	return u
}

func TestNew(t *testing.T) {
	for _, kind := range Kinds {
		a, err := New(kind, 7)
		require.NoError(t, err)
		require.NotNil(t, a)
	}
	_, err := New("minimax", 7)
	require.Error(t, err)
}

func TestRandom(t *testing.T) {
	t.Run("the same seed plays the same action", func(t *testing.T) {
		gs := newGame(t)
		place(t, gs, game.Militia, game.Faction1, 4, 2)
		place(t, gs, game.Mounted, game.Faction1, 4, 3)
		place(t, gs, game.Militia, game.Faction2, 1, 2)
		require.NoError(t, gs.Start())

		a, okA := NewRandom(42).NextMove(gs)
		b, okB := NewRandom(42).NextMove(gs)
		require.True(t, okA)
		require.True(t, okB)
		require.Equal(t, a, b)
	})

	t.Run("actions are always playable", func(t *testing.T) {
		gs := newGame(t)
		place(t, gs, game.Militia, game.Faction1, 4, 2)
		place(t, gs, game.Archers, game.Faction1, 5, 3)
		place(t, gs, game.Militia, game.Faction2, 1, 2)
		require.NoError(t, gs.Start())

		r := NewRandom(3)
		for i := 0; i < 10; i++ {
			act, ok := r.NextMove(gs)
			if !ok {
				break
			}
			if act.Skip {
				require.NoError(t, gs.Skip(act.Unit))
			} else {
				require.NoError(t, gs.Move(act.Unit, act.To))
			}
		}
		require.Empty(t, gs.Actors())
		_, ok := r.NextMove(gs)
		require.False(t, ok)
	})

	t.Run("allocations spend exactly the total on candidates", func(t *testing.T) {
		gs := newGame(t)
		d := &game.Decision{Kind: game.AllocateDamage, Candidates: []game.UnitID{"a", "b"}, Total: 5}
		answer := NewRandom(9).Decide(gs, d)

		sum := 0
		for id, n := range answer.Allocation {
			require.Contains(t, d.Candidates, id)
			sum += n
		}
		require.Equal(t, 5, sum)
	})

	t.Run("choices pick a candidate", func(t *testing.T) {
		gs := newGame(t)
		d := &game.Decision{Kind: game.ChooseChargeTarget, Candidates: []game.UnitID{"a", "b"}}
		require.Contains(t, d.Candidates, NewRandom(9).Decide(gs, d).Unit)
	})
}

func TestForward(t *testing.T) {
	t.Run("units advance toward the enemy castle", func(t *testing.T) {
		gs := newGame(t)
		u := place(t, gs, game.Militia, game.Faction1, 4, 2)
		place(t, gs, game.Militia, game.Faction2, 1, 5)
		require.NoError(t, gs.Start())

		act, ok := NewForward().NextMove(gs)
		require.True(t, ok)
		require.Equal(t, u.ID, act.Unit)
		require.False(t, act.Skip)
		require.Equal(t, 3, act.To.Row)
	})

	t.Run("units already in the castle row hold", func(t *testing.T) {
		gs := newGame(t)
		u := place(t, gs, game.Militia, game.Faction1, 0, 3)
		place(t, gs, game.Militia, game.Faction2, 3, 5)
		require.NoError(t, gs.Start())

		act, ok := NewForward().NextMove(gs)
		require.True(t, ok)
		require.Equal(t, Action{Unit: u.ID, Skip: true}, act)
	})

	t.Run("the commander orders a unit that can advance", func(t *testing.T) {
		gs := newGame(t)
		commander := place(t, gs, game.Commander, game.Faction1, 4, 2)
		militia := place(t, gs, game.Militia, game.Faction1, 3, 2)
		place(t, gs, game.Militia, game.Faction2, 0, 5)
		require.NoError(t, gs.Start())

		f := NewForward()
		act, ok := f.NextMove(gs)
		require.True(t, ok)
		require.Equal(t, Action{Unit: commander.ID, To: militia.Pos}, act)
		require.NoError(t, gs.Move(act.Unit, act.To))
		require.Equal(t, militia.ID, gs.CommanderTarget)

		act, ok = f.NextMove(gs)
		require.True(t, ok)
		require.Equal(t, militia.ID, act.Unit)
		require.Equal(t, 2, act.To.Row)
		require.NoError(t, gs.Move(act.Unit, act.To))
		require.True(t, gs.Activated[commander.ID])
	})

	t.Run("abilities aim at the most damaged target", func(t *testing.T) {
		gs := newGame(t)
		archer := place(t, gs, game.Archers, game.Faction1, 3, 2)
		place(t, gs, game.Militia, game.Faction2, 2, 2)
		hurt := place(t, gs, game.Militia, game.Faction2, 1, 2)
		hurt.Damage = 3

		h, ok := NewForward().ChooseTarget(gs, archer)
		require.True(t, ok)
		require.Equal(t, hurt.Pos, h)
	})

	t.Run("combat damage finishes the weakest unit first", func(t *testing.T) {
		gs := newGame(t)
		place(t, gs, game.Militia, game.Faction1, 2, 2)
		healthy := place(t, gs, game.Mounted, game.Faction2, 2, 2)
		wounded := place(t, gs, game.Mounted, game.Faction2, 2, 2)
		wounded.Damage = 4

		d := &game.Decision{Kind: game.AllocateDamage, Candidates: []game.UnitID{healthy.ID, wounded.ID}, Total: 3}
		answer := NewForward().Decide(gs, d)
		require.Equal(t, map[game.UnitID]int{wounded.ID: 1, healthy.ID: 2}, answer.Allocation)
	})
}
