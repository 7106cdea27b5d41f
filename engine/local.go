package engine

import (
	"fmt"
	"time"

	"mcts/experiments"
	"mcts/game"
	"mcts/policy"

	"github.com/rs/zerolog/log"
)

// Local drives a complete match on the in-process game: the policy-driven
// opponent moves first, then the searcher plans and moves, until the game
// reports a terminal state.
type Local struct {
	game         game.Game
	agent        Searcher
	agentMark    game.Mark
	opponentMark game.Mark
	opponent     policy.Policy
	stepsPerMove int
	collector    experiments.Collector
}

type LocalOption func(*Local)

func WithCollector(c experiments.Collector) LocalOption {
	return func(e *Local) {
		e.collector = c
	}
}

func NewLocal(g game.Game, agent Searcher, agentMark, opponentMark game.Mark, opponent policy.Policy, stepsPerMove int, options ...LocalOption) *Local {
	if stepsPerMove <= 0 {
		panic("must plan at least one step per move")
	}
	e := &Local{
		game:         g,
		agent:        agent,
		agentMark:    agentMark,
		opponentMark: opponentMark,
		opponent:     opponent,
		stepsPerMove: stepsPerMove,
		collector:    experiments.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Local) Run() (game.Mark, []experiments.MoveMetric, error) {
	var metrics []experiments.MoveMetric

	moveCount := 0
	for moveCount < MaxMoves {
		if terminal, winner := e.game.IsTerminal(e.game.CurrentState()); terminal {
			log.Info().Msgf("game over after %d moves, winner: %s", moveCount, winner)
			return winner, metrics, nil
		}

		// Opponent moves first: planning always reacts to the state right
		// after the opponent's move.
		opponentAction := e.opponent.SelectAction(e.game.CurrentState())
		if err := e.game.Play(opponentAction, e.opponentMark); err != nil {
			return game.NoMark, metrics, fmt.Errorf("opponent move %s: %w", opponentAction, err)
		}
		moveCount++
		log.Debug().Msgf("%s plays %s", e.opponentMark, opponentAction)

		if terminal, winner := e.game.IsTerminal(e.game.CurrentState()); terminal {
			log.Info().Msgf("game over after %d moves, winner: %s", moveCount, winner)
			return winner, metrics, nil
		}

		start := time.Now()
		for i := 0; i < e.stepsPerMove; i++ {
			e.agent.Step()
		}
		agentAction, err := e.agent.BestMove()
		if err != nil {
			return game.NoMark, metrics, fmt.Errorf("finding move %d: %w", moveCount+1, err)
		}
		metrics = append(metrics, e.collector.CompleteMove(experiments.MoveMetric{
			Move:          moveCount + 1,
			Mark:          e.agentMark.String(),
			PlanningSteps: e.stepsPerMove,
			Duration:      time.Since(start),
			MemorySize:    e.agent.MemorySize(),
		}))

		if err := e.game.Play(agentAction, e.agentMark); err != nil {
			return game.NoMark, metrics, fmt.Errorf("agent move %s: %w", agentAction, err)
		}
		moveCount++
		log.Debug().Msgf("%s plays %s", e.agentMark, agentAction)
	}

	return game.NoMark, metrics, fmt.Errorf("no winner after %d moves", MaxMoves)
}
