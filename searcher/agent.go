package searcher

import (
	"errors"
	"io"

	"mcts/game"
)

// ErrNoChildren is returned by BestMove when the current root has nothing to
// choose from, e.g. when no Step calls have run since the opponent's move.
var ErrNoChildren = errors.New("searcher: no children available at root")

// Agent plans moves by iterating a four-phase search over a game tree that
// persists across planning calls. The driver calls Step any number of times
// per decision point, then BestMove once to read off the chosen action.
type Agent interface {
	// Step runs one planning iteration. Calling it on an already-terminal
	// live state is a no-op.
	Step()
	// BestMove picks the best child of the current root. It never mutates
	// the tree and is safe to call repeatedly.
	BestMove() (game.Action, error)
	// MemorySize reports how many states the agent has memorized.
	MemorySize() int
	// PrintTree writes the current game tree to w, skipping terminal
	// subtrees.
	PrintTree(w io.Writer)
}

// variant supplies the phases of one planning iteration. The skeleton fixes
// their order; each engine decides what work lands in which phase.
type variant interface {
	preStepSetup()
	// selection reports false when the iteration ends early, i.e. the
	// tree walk bottomed out on a terminal leaf.
	selection() bool
	simulation()
	expansion()
	backpropagation()
}

// runStep drives the shared step protocol over a concrete engine.
func runStep(g game.Game, v variant) {
	if terminal, _ := g.IsTerminal(g.CurrentState()); terminal {
		return
	}
	v.preStepSetup()
	if !v.selection() {
		return
	}
	v.simulation()
	v.expansion()
	v.backpropagation()
}

// Outcome is the result of a playout from the planning agent's perspective.
type Outcome int

const (
	Draw Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}
