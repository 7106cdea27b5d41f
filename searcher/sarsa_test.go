package searcher

import (
	"math"
	"testing"

	"mcts/game"
	"mcts/policy"

	"github.com/stretchr/testify/require"
)

/* spec:
- step:
	- edge case: terminal live state -> no-op
	- happy path: episode generated with synthetic head, one new node memorized
- tree policy: untried action scores +Inf -> full action sweep before revisits
- backup: running best/worst return bounds track updates, denominator stays positive
- reward: external Rewarder preferred over the inline terminal rule
- best move: max raw value, >= tie-break keeps later action, no children -> error
*/

func TestSarsaStepOnTerminalState(t *testing.T) {
	g := wonGame(t)
	agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 1))

	agent.Step()

	require.Zero(t, agent.MemorySize(), "Planning on a finished game should not touch memory")
	require.Nil(t, agent.root, "No root should be attached")
}

func TestSarsaEpisodeSyntheticHead(t *testing.T) {
	g := game.NewTicTacToe()
	agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 1))

	agent.Step()

	require.NotEmpty(t, agent.episode)
	head := agent.episode[0]
	require.Nil(t, head.state, "Synthetic head should carry no predecessor")
	require.Nil(t, head.action, "Synthetic head should carry no action")
	require.Zero(t, head.reward, "Synthetic head should carry no reward")
	require.Equal(t, agent.root.state.Key(), head.next.Key(),
		"Synthetic head should target the root so it picks up backup credit")
}

func TestSarsaActionSweep(t *testing.T) {
	g := game.NewTicTacToe()
	agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 5))

	// One new node per episode: each step should memorize a child for a
	// not-yet-tried root action before any action is revisited.
	for i := 1; i <= 9; i++ {
		agent.Step()
		require.Len(t, agent.root.children, i,
			"Step %d should memorize a new root child (untried actions score +Inf)", i)
	}

	for _, action := range g.LegalActions(agent.root.state) {
		require.Contains(t, agent.root.children, action,
			"Every legal action should have a memorized child after the sweep")
	}
}

func TestSarsaOneNewNodePerStep(t *testing.T) {
	g := game.NewTicTacToe()
	agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 2))

	for i := 1; i <= 20; i++ {
		agent.Step()
		require.LessOrEqual(t, agent.MemorySize(), 1+i,
			"Memory should grow by at most one node per step")
	}
}

func TestSarsaReturnBounds(t *testing.T) {
	g := game.NewTicTacToe()
	agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 1))

	state := g.CurrentState()
	node := newValueNode(state, 0, nil, true)
	agent.memory.Insert(state.Key(), node)
	agent.episode = []transition{{reward: 5, next: state}}

	agent.backpropagation()

	require.Equal(t, 5.0, node.value)
	require.Equal(t, 5.0, agent.bestReturn, "Best return should follow the new value")
	require.Equal(t, 5.0-worstReturnEpsilon, agent.worstReturn,
		"Worst return should be nudged below the best to keep the denominator positive")

	normalized := normalize(node.value, agent.worstReturn, agent.bestReturn)
	require.False(t, math.IsNaN(normalized), "Normalization should stay finite")
	require.False(t, math.IsInf(normalized, 0), "Normalization should stay finite")
}

func TestSarsaRewardSource(t *testing.T) {
	t.Run("defers to the game's Rewarder when present", func(t *testing.T) {
		g := &rewardingGame{TicTacToe: game.NewTicTacToe(), reward: 0.25}
		agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 1))

		require.Equal(t, 0.25, agent.reward(g.CurrentState()))
	})

	t.Run("falls back to the sparse terminal rule", func(t *testing.T) {
		g := wonGame(t) // X won
		agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 1))

		require.Equal(t, 1.0, agent.reward(g.CurrentState()),
			"Agent win should reward +1")

		loser := NewSarsa(g, game.O, game.X, policy.NewRandom(g, 1))
		require.Equal(t, -1.0, loser.reward(g.CurrentState()),
			"Opponent win should reward -1")

		fresh := game.NewTicTacToe()
		ongoing := NewSarsa(fresh, game.X, game.O, policy.NewRandom(fresh, 1))
		require.Zero(t, ongoing.reward(fresh.CurrentState()),
			"Non-terminal states should reward 0")
	})
}

func TestSarsaSingleActionRoot(t *testing.T) {
	// A once-visited root whose only action already has a child makes the
	// exploration term ln(1)/ln(1); such actions must score like untried
	// ones instead of losing to every finite score.
	g := &mockGame{
		current: mockState{key: "r"},
		actions: map[string][]game.Action{
			"r": {mockAction{id: 0}},
		},
		successor: map[string]map[game.Action]game.State{
			"r": {mockAction{id: 0}: mockState{key: "t"}},
		},
		winners: map[string]game.Mark{"t": game.X},
	}
	agent := NewSarsa(g, game.X, game.O, firstActionPolicy{game: g})

	require.NotPanics(t, func() {
		agent.Step()
		agent.Step()
	}, "Revisiting the only tried action of a fresh root is valid planning")
	require.Equal(t, uint64(2), agent.root.visits)
	require.Equal(t, uint64(2), agent.root.children[mockAction{id: 0}].visits)
}

func TestSarsaVisitMonotonicity(t *testing.T) {
	g := game.NewTicTacToe()
	agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 13))
	for i := 0; i < 10; i++ {
		agent.Step()
	}

	before := make(map[string]uint64)
	for key, node := range agent.memory.nodes {
		before[key] = node.visits
	}

	agent.Step()

	require.NotEmpty(t, agent.episode)
	for _, tr := range agent.episode {
		node, ok := agent.memory.Lookup(tr.next.Key())
		if !ok {
			continue
		}
		require.Greater(t, node.visits, before[tr.next.Key()],
			"Every memorized state on the episode should gain a visit")
	}
}

func TestSarsaExpansionPrecondition(t *testing.T) {
	g := game.NewTicTacToe()
	agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 1))

	agent.episode = []transition{
		{next: mockState{key: "root"}},
		{state: mockState{key: "unmemorized"}, action: mockAction{id: 0}, next: mockState{key: "next"}},
	}

	require.Panics(t, func() { agent.expansion() },
		"Expanding from an unmemorized predecessor is an invariant breach")
}

func TestSarsaBestMove(t *testing.T) {
	t.Run("prefers the child with the highest raw value", func(t *testing.T) {
		g := game.NewTicTacToe()
		agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 1))
		agent.preStepSetup()
		agent.root.addChild(mockState{key: "weak"}, 0.1, game.Cell{Row: 0, Col: 0})
		agent.root.addChild(mockState{key: "strong"}, 0.9, game.Cell{Row: 0, Col: 1})

		got, err := agent.BestMove()

		require.NoError(t, err)
		require.Equal(t, game.Cell{Row: 0, Col: 1}, got)
	})

	t.Run("breaks ties toward the later-enumerated action", func(t *testing.T) {
		g := game.NewTicTacToe()
		agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 1))
		agent.preStepSetup()
		agent.root.addChild(mockState{key: "first"}, 0.5, game.Cell{Row: 0, Col: 0})
		agent.root.addChild(mockState{key: "second"}, 0.5, game.Cell{Row: 0, Col: 1})

		got, err := agent.BestMove()

		require.NoError(t, err)
		require.Equal(t, game.Cell{Row: 0, Col: 1}, got,
			"Equal-value children should resolve to the last action scanned")
	})

	t.Run("fails when the root has no children", func(t *testing.T) {
		g := game.NewTicTacToe()
		agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 1))

		_, err := agent.BestMove()
		require.ErrorIs(t, err, ErrNoChildren)

		agent.preStepSetup()
		_, err = agent.BestMove()
		require.ErrorIs(t, err, ErrNoChildren)
	})
}

func TestSarsaDeterminism(t *testing.T) {
	build := func() *Sarsa {
		g := game.NewTicTacToe()
		return NewSarsa(g, game.X, game.O, firstActionPolicy{game: g})
	}
	a, b := build(), build()

	for i := 0; i < 100; i++ {
		a.Step()
		b.Step()
	}

	require.Equal(t, a.MemorySize(), b.MemorySize())

	var compare func(x, y *valueNode)
	compare = func(x, y *valueNode) {
		require.Equal(t, x.state.Key(), y.state.Key())
		require.Equal(t, x.visits, y.visits)
		require.InDelta(t, x.value, y.value, 1e-12)
		require.Len(t, y.children, len(x.children))
		for action, xc := range x.children {
			yc, ok := y.children[action]
			require.True(t, ok, "Both trees should hold a child for %s", action)
			compare(xc, yc)
		}
	}
	compare(a.root, b.root)
}

func TestSarsaTurnAlternation(t *testing.T) {
	g := game.NewTicTacToe()
	agent := NewSarsa(g, game.X, game.O, policy.NewRandom(g, 9))

	for i := 0; i < 50; i++ {
		agent.Step()
	}

	seen := make(map[*valueNode]bool)
	var walk func(n *valueNode)
	walk = func(n *valueNode) {
		if seen[n] {
			return
		}
		seen[n] = true
		for _, child := range n.children {
			require.Equal(t, !n.opponentTurn, child.opponentTurn,
				"Every child's owner should be the negation of its parent's")
			walk(child)
		}
	}
	walk(agent.root)
}
