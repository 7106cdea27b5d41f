package searcher

import (
	"io"
	"math"
	"sort"

	"mcts/game"
	"mcts/policy"
)

const worstReturnEpsilon = 1e-9 // Keeps the normalization denominator positive

// transition is one (s, a, r, s') step of an episode. A synthetic head with
// a nil state is injected so the root picks up credit for the root-to-first
// transition.
type transition struct {
	state  game.State
	action game.Action
	reward float64
	next   game.State
}

// Sarsa is the Sarsa-UCT(lambda) engine described by Vodopivec et al. in
// "On Monte Carlo Tree Search and Reinforcement Learning". It replaces
// terminal-only backpropagation with online TD(lambda) value updates over
// episodes that interleave the tree policy with the playout policy.
type Sarsa struct {
	game         game.Game
	mark         game.Mark
	opponentMark game.Mark
	playout      policy.Policy
	exploration  float64
	alpha        float64 // Reserved: the backup derives its rate as 1/visits
	gamma        float64
	traceDecay   float64

	// vInit seeds the value of a freshly expanded node; vPlayout estimates
	// the value of states the tree never memorized.
	vInit    func(game.State) float64
	vPlayout func(game.State) float64

	memory *Memory[*valueNode]
	root   *valueNode

	// Running return bounds for normalizing the exploitation term, so the
	// exploration bonus is never swamped by unscaled values.
	worstReturn float64
	bestReturn  float64

	episode []transition // Reset by preStepSetup
}

func NewSarsa(g game.Game, mark, opponentMark game.Mark, playout policy.Policy, options ...Option) *Sarsa {
	cfg := defaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	zero := func(game.State) float64 { return 0 }
	return &Sarsa{
		game:         g,
		mark:         mark,
		opponentMark: opponentMark,
		playout:      playout,
		exploration:  cfg.exploration,
		alpha:        cfg.alpha,
		gamma:        cfg.gamma,
		traceDecay:   cfg.traceDecay,
		vInit:        zero,
		vPlayout:     zero,
		memory:       NewMemory[*valueNode](),
		worstReturn:  1e9,
		bestReturn:   -1e9,
	}
}

func (a *Sarsa) Step() {
	runStep(a.game, a)
}

func (a *Sarsa) preStepSetup() {
	a.episode = a.episode[:0]

	current := a.game.CurrentState()
	root, ok := a.memory.Lookup(current.Key())
	if !ok {
		root = newValueNode(current, a.vInit(current), nil, true)
		a.memory.Insert(current.Key(), root)
	}
	a.root = root
}

// selection generates the episode; the playout is interleaved into it, so
// simulation has nothing left to do.
func (a *Sarsa) selection() bool {
	a.generateEpisode(a.root)
	return true
}

func (a *Sarsa) simulation() {}

// generateEpisode walks from the root to a terminal state, following the
// tree policy on memorized states and the playout policy everywhere else,
// collecting rewards as it goes.
func (a *Sarsa) generateEpisode(root *valueNode) {
	s := root.state
	opponentTurn := root.opponentTurn
	for {
		if terminal, _ := a.game.IsTerminal(s); terminal {
			return
		}
		var action game.Action
		if node, ok := a.memory.Lookup(s.Key()); ok {
			action = a.ucb1TreePolicy(node)
		} else {
			action = a.playout.SelectAction(s)
		}
		mover := a.opponentMark
		if opponentTurn {
			mover = a.mark
		}
		next := a.game.Apply(s, action, mover)
		opponentTurn = !opponentTurn
		reward := a.reward(next)
		if len(a.episode) == 0 {
			// Synthetic head: makes the root a backup target for the
			// root-to-first-child transition.
			a.episode = append(a.episode, transition{next: s})
		}
		a.episode = append(a.episode, transition{state: s, action: action, reward: reward, next: next})
		s = next
	}
}

// ucb1TreePolicy scores every legal action of a memorized node. An action
// with no memorized child scores +Inf, so every action is tried once before
// any is revisited. The exploitation term is normalized into the running
// return bounds.
func (a *Sarsa) ucb1TreePolicy(node *valueNode) game.Action {
	var best game.Action
	bestUCB := math.Inf(-1)
	for _, action := range a.game.LegalActions(node.state) {
		var ucb float64
		if child, ok := node.children[action]; ok {
			exploit := normalize(child.value, a.worstReturn, a.bestReturn)
			explore := a.exploration * math.Sqrt(2*math.Log(float64(node.visits))/math.Log(float64(child.visits)))
			ucb = exploit + explore
			if math.IsNaN(ucb) {
				// ln(1)/ln(1) is 0/0: a once-visited parent cannot rank
				// its tried children yet, so they score like untried ones.
				ucb = math.Inf(1)
			}
		} else {
			ucb = math.Inf(1)
		}
		// >= keeps the last equal-best action in enumeration order.
		if ucb >= bestUCB {
			bestUCB = ucb
			best = action
		}
	}
	if best == nil {
		panic("tree policy invoked on a state with no legal actions")
	}
	return best
}

// reward defers to the game's Rewarder when it has one, falling back to the
// sparse terminal rule: +1 when the agent's mark won, -1 when the
// opponent's did, 0 otherwise.
func (a *Sarsa) reward(s game.State) float64 {
	if rewarder, ok := a.game.(game.Rewarder); ok {
		return rewarder.Reward(s, a.mark)
	}
	terminal, winner := a.game.IsTerminal(s)
	if !terminal {
		return 0
	}
	switch winner {
	case a.mark:
		return 1
	case a.opponentMark:
		return -1
	}
	return 0
}

// expansion memorizes at most one new node per episode: the first successor
// state the tree has not seen yet. Frugal on memory, costly on samples.
func (a *Sarsa) expansion() {
	if len(a.episode) == 0 {
		return
	}
	for _, t := range a.episode[1:] {
		parent, ok := a.memory.Lookup(t.state.Key())
		if !ok {
			// The walk only leaves memorized territory once per episode,
			// so every predecessor before the cut must be memorized.
			panic("expansion reached a transition whose predecessor is not memorized")
		}
		if _, ok := parent.children[t.action]; !ok {
			parent.addChild(t.next, a.vInit(t.next), t.action)
		}
		if !a.memory.Has(t.next.Key()) {
			a.memory.Insert(t.next.Key(), parent.children[t.action])
			return
		}
	}
}

// backpropagation replays the episode in reverse, accumulating trace-decayed
// TD errors and applying an incremental-mean update to every memorized
// state on the trajectory.
func (a *Sarsa) backpropagation() {
	tdCum := 0.0
	vNext := 0.0
	for i := len(a.episode) - 1; i >= 0; i-- {
		t := a.episode[i]
		node, memorized := a.memory.Lookup(t.next.Key())
		var vCurrent float64
		if memorized {
			vCurrent = node.value
		} else {
			vCurrent = a.vPlayout(t.next)
		}

		singleStepTD := t.reward + a.gamma*vNext - vCurrent
		tdCum = a.traceDecay*a.gamma*tdCum + singleStepTD

		if memorized {
			node.visits++
			node.value += (1 / float64(node.visits)) * tdCum
			if node.value >= a.bestReturn {
				a.bestReturn = node.value
			}
			if node.value <= a.worstReturn {
				a.worstReturn = node.value - worstReturnEpsilon
			}
		}
		vNext = vCurrent
	}
}

// BestMove greedily picks the root child with the highest raw value; no
// normalization at decision time. Ties go to the last equal-best child in
// legal-action enumeration order.
func (a *Sarsa) BestMove() (game.Action, error) {
	if a.root == nil || a.root.leaf() {
		return nil, ErrNoChildren
	}
	var best game.Action
	maxValue := math.Inf(-1)
	for _, action := range a.game.LegalActions(a.root.state) {
		child, ok := a.root.children[action]
		if !ok {
			continue
		}
		if child.value >= maxValue {
			maxValue = child.value
			best = action
		}
	}
	if best == nil {
		return nil, ErrNoChildren
	}
	return best, nil
}

func (a *Sarsa) MemorySize() int {
	return a.memory.Len()
}

func (a *Sarsa) PrintTree(w io.Writer) {
	if a.root == nil {
		return
	}
	writeTree(w, a.root, func(s game.State) bool {
		terminal, _ := a.game.IsTerminal(s)
		return terminal
	})
}

func normalize(value, worst, best float64) float64 {
	return (value - worst) / (best - worst)
}

func (n *valueNode) treeState() game.State { return n.state }

func (n *valueNode) treeChildren() []treeNode {
	ordered := make([]*valueNode, 0, len(n.children))
	for _, child := range n.children {
		ordered = append(ordered, child)
	}
	// Deterministic display order regardless of map iteration.
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].action.String() < ordered[j].action.String()
	})
	kids := make([]treeNode, len(ordered))
	for i, child := range ordered {
		kids[i] = child
	}
	return kids
}

func (n *valueNode) treeOwner() bool { return n.opponentTurn }
