package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArcherDamage(t *testing.T) {
	tests := []struct {
		name       string
		moved      bool
		sameTarget bool
		want       int
	}{
		{"stationary on the remembered target", false, true, 2},
		{"stationary on a new target", false, false, 1},
		{"moved on the remembered target", true, true, 1},
		{"moved on a new target never goes negative", true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := newTestGame()
			archer := place(t, gs, Archers, Faction1, 3, 3)
			target := place(t, gs, Militia, Faction2, 1, 3)
			archer.Moved = tt.moved
			if tt.sameTarget {
				archer.LastTarget = target.ID
			}
			require.Equal(t, tt.want, gs.ArcherDamage(archer, target))
		})
	}
}

func TestAbilityTargets(t *testing.T) {
	t.Run("archers reach one or two hexes", func(t *testing.T) {
		gs := newTestGame()
		archer := place(t, gs, Archers, Faction1, 3, 3)
		near := place(t, gs, Militia, Faction2, 2, 3)
		far := place(t, gs, Militia, Faction2, 1, 3)
		place(t, gs, Militia, Faction2, 0, 3)
		place(t, gs, Militia, Faction1, 2, 2)

		require.Equal(t, []*Unit{near, far}, gs.AbilityTargets(archer))
	})

	t.Run("cannon only fires when it did not move", func(t *testing.T) {
		gs := newTestGame()
		cannon := place(t, gs, Cannon, Faction1, 3, 3)
		place(t, gs, Militia, Faction2, 2, 3)

		require.Len(t, gs.AbilityTargets(cannon), 1)
		cannon.Moved = true
		require.Empty(t, gs.AbilityTargets(cannon))
	})

	t.Run("muskets sweep their column", func(t *testing.T) {
		gs := newTestGame()
		muskets := place(t, gs, Muskets, Faction1, 5, 1)
		a := place(t, gs, Militia, Faction2, 0, 1)
		b := place(t, gs, Militia, Faction2, 2, 1)
		place(t, gs, Militia, Faction2, 2, 2)

		require.Equal(t, []*Unit{a, b}, gs.AbilityTargets(muskets))
	})

	t.Run("melee abilities reach adjacent hexes only", func(t *testing.T) {
		gs := newTestGame()
		spears := place(t, gs, Spears, Faction1, 3, 3)
		jesters := place(t, gs, Jesters, Faction1, 3, 3)
		adjacent := place(t, gs, Militia, Faction2, 2, 3)
		place(t, gs, Militia, Faction2, 1, 3)

		require.Equal(t, []*Unit{adjacent}, gs.AbilityTargets(spears))
		require.Equal(t, []*Unit{adjacent}, gs.AbilityTargets(jesters))
	})

	t.Run("units without a resolution ability have no targets", func(t *testing.T) {
		gs := newTestGame()
		m := place(t, gs, Militia, Faction1, 3, 3)
		place(t, gs, Militia, Faction2, 2, 3)
		require.Empty(t, gs.AbilityTargets(m))
		require.Empty(t, AbilityName(Militia))
	})
}

func TestAbilityResolution(t *testing.T) {
	t.Run("jesters drag their target onto their own hex", func(t *testing.T) {
		gs := newTestGame()
		jesters := place(t, gs, Jesters, Faction1, 3, 3)
		target := place(t, gs, Militia, Faction2, 2, 3)
		start(t, gs)
		toResolution(t, gs)

		require.Equal(t, jesters.Pos, target.Pos)
		require.Zero(t, target.Damage)
		require.True(t, logContains(gs, "Taunt"))
	})

	t.Run("cannon hits every enemy on the chosen hex", func(t *testing.T) {
		gs := newTestGame()
		place(t, gs, Cannon, Faction1, 3, 3)
		a := place(t, gs, Militia, Faction2, 1, 3)
		b := place(t, gs, Spears, Faction2, 1, 3)
		start(t, gs)
		toResolution(t, gs)

		require.Equal(t, 1, a.Damage)
		require.Equal(t, 1, b.Damage)
	})

	t.Run("muskets that moved hold fire", func(t *testing.T) {
		gs := newTestGame()
		muskets := place(t, gs, Muskets, Faction1, 4, 1)
		target := place(t, gs, Militia, Faction2, 1, 1)
		start(t, gs)
		require.NoError(t, gs.Move(muskets.ID, Hex{5, 1}))
		toResolution(t, gs)

		require.Zero(t, target.Damage)
	})

	t.Run("spears pierce an adjacent enemy", func(t *testing.T) {
		gs := newTestGame()
		place(t, gs, Spears, Faction1, 3, 3)
		target := place(t, gs, Militia, Faction2, 2, 3)
		start(t, gs)
		toResolution(t, gs)

		require.Equal(t, 1, target.Damage)
		require.True(t, logContains(gs, "Pierce"))
		require.True(t, logContains(gs, "(4/5 HP)"))
	})

	t.Run("melee resolves before ranged", func(t *testing.T) {
		gs := newTestGame()
		place(t, gs, Jesters, Faction1, 3, 3)
		archer := place(t, gs, Archers, Faction2, 2, 3)
		place(t, gs, Militia, Faction1, 1, 2)
		start(t, gs)
		toResolution(t, gs)
		require.Equal(t, AbilityTargetingPhase, gs.Phase)
		require.NoError(t, gs.SkipTarget())

		require.Equal(t, Hex{3, 3}, archer.Pos, "the archer was taunted")
		for _, u := range gs.Units {
			if u.Type == Militia {
				require.Zero(t, u.Damage, "an engaged archer cannot shoot")
			}
		}
	})
}

func TestAbilityTargeting(t *testing.T) {
	setup := func(t *testing.T, options ...Option) (gs *GameState, archer1, archer2 *Unit, near1, far1, near2 *Unit) {
		gs = newTestGame(options...)
		archer1 = place(t, gs, Archers, Faction1, 3, 0)
		near1 = place(t, gs, Militia, Faction2, 2, 0)
		far1 = place(t, gs, Militia, Faction2, 1, 0)
		archer2 = place(t, gs, Archers, Faction2, 0, 5)
		near2 = place(t, gs, Militia, Faction1, 1, 5)
		place(t, gs, Militia, Faction1, 2, 5)
		start(t, gs)
		toResolution(t, gs)
		return
	}

	t.Run("faction 2 chooses first, then faction 1", func(t *testing.T) {
		gs, archer1, archer2, _, _, _ := setup(t)

		require.Equal(t, AbilityTargetingPhase, gs.Phase)
		require.Equal(t, Faction2, gs.Targeting.Player)
		require.Equal(t, archer2.ID, gs.Targeting.Current)

		require.NoError(t, gs.TargetHex(Hex{2, 5}))
		require.Equal(t, Faction1, gs.Targeting.Player)
		require.Equal(t, archer1.ID, gs.Targeting.Current)
	})

	t.Run("a hex without targets is rejected", func(t *testing.T) {
		gs, _, archer2, _, _, _ := setup(t)

		require.ErrorIs(t, gs.TargetHex(Hex{5, 0}), ErrInvalidTarget)
		require.Equal(t, archer2.ID, gs.Targeting.Current)
		require.Empty(t, gs.Selections)
		require.True(t, logContains(gs, "no valid target at [5, 0]"))
	})

	t.Run("selections drive the ranged pass", func(t *testing.T) {
		gs, archer1, archer2, near1, far1, near2 := setup(t)

		require.NoError(t, gs.TargetHex(Hex{1, 5}))
		require.NoError(t, gs.TargetHex(Hex{1, 0}))

		require.Equal(t, Faction1MovePhase, gs.Phase)
		require.Equal(t, 2, gs.Round)
		require.Equal(t, 1, far1.Damage, "new target costs one point")
		require.Zero(t, near1.Damage)
		require.Equal(t, 1, near2.Damage)
		require.Empty(t, archer1.LastTarget, "remembered targets are cleared at round end")
		require.Empty(t, archer2.LastTarget)
	})

	t.Run("a target shot last round still counts as new", func(t *testing.T) {
		gs, archer1, _, _, far1, _ := setup(t)
		require.NoError(t, gs.TargetHex(Hex{1, 5}))
		require.NoError(t, gs.TargetHex(Hex{1, 0}))
		require.Equal(t, 1, far1.Damage)

		toResolution(t, gs)
		require.NoError(t, gs.SkipTarget())
		require.NoError(t, gs.SkipTarget())

		require.Equal(t, 2, far1.Damage, "the second shot pays the new target penalty again")
		require.Empty(t, archer1.LastTarget)
	})

	t.Run("an ambiguous hex asks the faction to choose", func(t *testing.T) {
		gs := newTestGame(WithDecider(Faction1))
		place(t, gs, Archers, Faction1, 3, 0)
		a := place(t, gs, Militia, Faction2, 1, 0)
		b := place(t, gs, Spears, Faction2, 1, 0)
		start(t, gs)
		toResolution(t, gs)

		require.NoError(t, gs.TargetHex(Hex{1, 0}))
		d := gs.Pending()
		require.NotNil(t, d)
		require.Equal(t, ChooseAbilityTarget, d.Kind)
		require.Equal(t, []UnitID{a.ID, b.ID}, d.Candidates)

		require.NoError(t, gs.Decide(Answer{Unit: b.ID}))
		require.Equal(t, 1, b.Damage)
		require.Zero(t, a.Damage)
	})
}
