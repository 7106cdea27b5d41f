package policy

import (
	"mcts/game"

	"golang.org/x/exp/rand"
)

// Random picks uniformly among the legal actions of a state.
type Random struct {
	game game.Game
	rng  *rand.Rand
}

func NewRandom(g game.Game, seed uint64) *Random {
	return &Random{
		game: g,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) SelectAction(s game.State) game.Action {
	actions := r.game.LegalActions(s)
	if len(actions) == 0 {
		panic("no legal actions to select from")
	}
	return actions[r.rng.Intn(len(actions))]
}
