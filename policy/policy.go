package policy

import "mcts/game"

// Policy picks an action for a raw state during playouts. Implementations
// own their randomness so callers can seed them for reproducible searches.
type Policy interface {
	SelectAction(s game.State) game.Action
}
