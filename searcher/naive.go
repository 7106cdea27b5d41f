package searcher

import (
	"io"
	"math"

	"mcts/game"
	"mcts/policy"

	"golang.org/x/exp/rand"
)

// Naive is a classical MCTS engine: UCB1 tree descent, uniform rollout-pick,
// random-policy playout, and win/loss/draw backpropagation. The tree and its
// statistics persist across Step calls for the lifetime of the agent.
type Naive struct {
	game         game.Game
	mark         game.Mark
	opponentMark game.Mark
	playout      policy.Policy
	exploration  float64
	rng          *rand.Rand

	memory *Memory[*statNode]
	root   *statNode

	// Per-step scratch, reset by preStepSetup.
	path        []*statNode
	playoutNode *statNode
	outcome     Outcome
}

func NewNaive(g game.Game, mark, opponentMark game.Mark, playout policy.Policy, options ...Option) *Naive {
	cfg := defaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	return &Naive{
		game:         g,
		mark:         mark,
		opponentMark: opponentMark,
		playout:      playout,
		exploration:  cfg.exploration,
		rng:          rand.New(rand.NewSource(cfg.seed)),
		memory:       NewMemory[*statNode](),
	}
}

func (a *Naive) Step() {
	runStep(a.game, a)
}

func (a *Naive) preStepSetup() {
	a.path = a.path[:0]
	a.playoutNode = nil

	// Planning always starts from the live position. The state right after
	// the opponent's move is owned by the opponent.
	current := a.game.CurrentState()
	root, ok := a.memory.Lookup(current.Key())
	if !ok {
		root = newStatNode(current, nil, true)
		a.memory.Insert(current.Key(), root)
	}
	a.root = root
}

// selection carves a path through the tree by UCB1, then expands the leaf
// and draws the playout child. Returns false when the leaf is terminal.
func (a *Naive) selection() bool {
	leaf := a.lookahead()
	if terminal, _ := a.game.IsTerminal(leaf.state); terminal {
		return false
	}
	a.expandLeaf(leaf)
	a.playoutNode = leaf.children[a.rng.Intn(len(leaf.children))]
	// The playout child earns backpropagation credit too.
	a.path = append(a.path, a.playoutNode)
	return true
}

func (a *Naive) lookahead() *statNode {
	node := a.root
	a.path = append(a.path, node)
	for !node.leaf() {
		var best *statNode
		bestValue := 0.0
		for _, child := range node.children {
			// Statistics are stored from the agent's perspective, so an
			// opponent-owned child scores by its complement.
			exploit := child.value()
			if child.opponentTurn {
				exploit = 1 - exploit
			}
			explore := a.exploration * math.Sqrt(math.Log(float64(node.visits))/float64(child.visits))
			// >= keeps the last equal-best child in enumeration order.
			if exploit+explore >= bestValue {
				bestValue = exploit + explore
				best = child
			}
		}
		node = best
		a.path = append(a.path, node)
	}
	return node
}

// expandLeaf attaches one child per legal action; actions that already have
// a child are skipped. New states are registered in memory so the tree
// carries over when the live game reaches them later; a state first seen on
// another line keeps its original index entry.
func (a *Naive) expandLeaf(leaf *statNode) {
	mover := a.mark
	if !leaf.opponentTurn {
		mover = a.opponentMark
	}
	for _, action := range a.game.LegalActions(leaf.state) {
		if leaf.hasChild(action) {
			continue
		}
		next := a.game.Apply(leaf.state, action, mover)
		child := newStatNode(next, action, !leaf.opponentTurn)
		leaf.addChild(child)
		if !a.memory.Has(next.Key()) {
			a.memory.Insert(next.Key(), child)
		}
	}
}

func (a *Naive) simulation() {
	a.outcome = a.performPlayout(a.playoutNode)
}

func (a *Naive) performPlayout(node *statNode) Outcome {
	state := node.state.Clone()
	opponentTurn := node.opponentTurn
	for {
		terminal, winner := a.game.IsTerminal(state)
		if terminal {
			switch winner {
			case a.mark:
				return Win
			case a.opponentMark:
				return Loss
			}
			return Draw
		}
		action := a.playout.SelectAction(state)
		mover := a.mark
		if opponentTurn {
			mover = a.opponentMark
		}
		state = a.game.Apply(state, action, mover)
		opponentTurn = !opponentTurn
	}
}

// expansion is a no-op: the leaf was expanded during selection so the
// playout child could be drawn from it.
func (a *Naive) expansion() {}

func (a *Naive) backpropagation() {
	for _, node := range a.path {
		node.recordOutcome(a.outcome)
	}
}

// BestMove greedily picks the root child with the highest win rate. Ties go
// to the last equal-best child in enumeration order.
func (a *Naive) BestMove() (game.Action, error) {
	if a.root == nil || a.root.leaf() {
		return nil, ErrNoChildren
	}
	var best *statNode
	maxValue := 0.0
	for _, child := range a.root.children {
		if child.value() >= maxValue {
			maxValue = child.value()
			best = child
		}
	}
	return best.action, nil
}

func (a *Naive) MemorySize() int {
	return a.memory.Len()
}

func (a *Naive) PrintTree(w io.Writer) {
	if a.root == nil {
		return
	}
	writeTree(w, a.root, func(s game.State) bool {
		terminal, _ := a.game.IsTerminal(s)
		return terminal
	})
}

func (n *statNode) treeState() game.State { return n.state }

func (n *statNode) treeChildren() []treeNode {
	kids := make([]treeNode, len(n.children))
	for i, child := range n.children {
		kids[i] = child
	}
	return kids
}

func (n *statNode) treeOwner() bool { return n.opponentTurn }
