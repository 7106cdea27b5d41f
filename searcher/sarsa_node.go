package searcher

import (
	"fmt"

	"mcts/game"
)

// valueNode is a Sarsa-UCT(lambda) tree node carrying a TD value estimate
// instead of win statistics. Children are keyed by the action that
// produced them.
type valueNode struct {
	state        game.State
	action       game.Action // nil at a root
	opponentTurn bool
	value        float64
	visits       uint64
	children     map[game.Action]*valueNode
}

func newValueNode(state game.State, vInit float64, action game.Action, opponentTurn bool) *valueNode {
	return &valueNode{
		state:        state,
		action:       action,
		opponentTurn: opponentTurn,
		value:        vInit,
		children:     make(map[game.Action]*valueNode),
	}
}

func (n *valueNode) leaf() bool {
	return len(n.children) == 0
}

func (n *valueNode) addChild(state game.State, vInit float64, action game.Action) {
	n.children[action] = newValueNode(state, vInit, action, !n.opponentTurn)
}

func (n *valueNode) label() string {
	return fmt.Sprintf("s = %s | V(s) = %g | N(s) = %d", n.state.Key(), n.value, n.visits)
}
