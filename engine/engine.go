package engine

import (
	"mcts/experiments"
	"mcts/game"
)

// MaxMoves caps a match so a buggy game can never loop forever.
const MaxMoves = 10000

type Engine interface {
	// Run plays a match to completion and reports the winner (NoMark on a
	// draw) together with per-move search metrics.
	Run() (winner game.Mark, moves []experiments.MoveMetric, err error)
}

// Searcher is the planning side of the driver contract: Step any number of
// times per decision point, then BestMove once.
type Searcher interface {
	Step()
	BestMove() (game.Action, error)
	MemorySize() int
}
