package agent

import (
	"golang.org/x/exp/rand"

	"hexkeep/game"
)

// Random plays uniformly random legal actions from a seeded source.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) NextMove(gs *game.GameState) (Action, bool) {
	actors := gs.Actors()
	if len(actors) == 0 {
		return Action{}, false
	}
	u := actors[r.rng.Intn(len(actors))]
	legal := gs.LegalMoves(u.ID)
	// one extra slot for holding position
	i := r.rng.Intn(len(legal) + 1)
	if i == len(legal) {
		return Action{Unit: u.ID, Skip: true}, true
	}
	return Action{Unit: u.ID, To: legal[i]}, true
}

func (r *Random) ChooseTarget(gs *game.GameState, u *game.Unit) (game.Hex, bool) {
	options := targetOptions(gs, u)
	if len(options) == 0 {
		return game.Hex{}, false
	}
	return options[r.rng.Intn(len(options))], true
}

func (r *Random) Decide(gs *game.GameState, d *game.Decision) game.Answer {
	if len(d.Candidates) == 0 {
		return game.Answer{}
	}
	if d.Kind == game.AllocateDamage {
		alloc := make(map[game.UnitID]int, len(d.Candidates))
		for i := 0; i < d.Total; i++ {
			alloc[d.Candidates[r.rng.Intn(len(d.Candidates))]]++
		}
		return game.Answer{Allocation: alloc}
	}
	return game.Answer{Unit: d.Candidates[r.rng.Intn(len(d.Candidates))]}
}
