package game

// Action is an opaque move token. Concrete types must be comparable so a
// tree node can key its children by action.
type Action interface {
	String() string
}

// State is an immutable snapshot of a game position. Two rule-equivalent
// states must produce identical keys: the searcher uses the key to
// deduplicate and merge tree nodes.
type State interface {
	// Key returns the canonical identity of this state.
	Key() string
	// Clone returns a deep copy safe to mutate during playouts.
	Clone() State
}

// Game supplies the rules and the authoritative live position. The searcher
// only ever reads the live position; the driver advances it with Play.
type Game interface {
	CurrentState() State
	LegalActions(s State) []Action
	// Apply returns the successor of s after mark m takes action a.
	// It never mutates s.
	Apply(s State, a Action, m Mark) State
	// IsTerminal reports whether s ends the game and who won.
	// The winner is NoMark on a draw.
	IsTerminal(s State) (bool, Mark)
	// Play advances the live position.
	Play(a Action, m Mark) error
}

// Rewarder is an optional capability. Games that implement it take over
// reward computation from the searcher's inline terminal rule.
type Rewarder interface {
	Reward(s State, m Mark) float64
}
