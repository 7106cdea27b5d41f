package searcher

import (
	"fmt"

	"mcts/game"
)

// statNode is a Naive MCTS tree node. Statistics are stored from the
// planning agent's perspective; opponentTurn records whose move produced
// this state.
type statNode struct {
	state        game.State
	action       game.Action // nil at a root
	opponentTurn bool
	wins         float64
	visits       uint64 // starts at 1 so UCB1 never divides by zero
	children     []*statNode
}

func newStatNode(state game.State, action game.Action, opponentTurn bool) *statNode {
	return &statNode{
		state:        state,
		action:       action,
		opponentTurn: opponentTurn,
		visits:       1,
	}
}

func (n *statNode) leaf() bool {
	return len(n.children) == 0
}

func (n *statNode) value() float64 {
	return n.wins / float64(n.visits)
}

func (n *statNode) hasChild(action game.Action) bool {
	for _, child := range n.children {
		if child.action == action {
			return true
		}
	}
	return false
}

func (n *statNode) addChild(child *statNode) {
	n.children = append(n.children, child)
}

func (n *statNode) recordOutcome(outcome Outcome) {
	switch outcome {
	case Win:
		if !n.opponentTurn {
			n.wins++
		}
	case Loss:
		if n.opponentTurn {
			n.wins++
		}
	default:
		n.wins += 0.5
	}
	n.visits++
}

func (n *statNode) label() string {
	return fmt.Sprintf("s = %s | W(s) = %g | N(s) = %d", n.state.Key(), n.wins, n.visits)
}
