package searcher

import (
	"fmt"

	"mcts/game"
)

type mockAction struct {
	id int
}

func (a mockAction) String() string {
	return fmt.Sprintf("a%d", a.id)
}

type mockState struct {
	key string
}

func (s mockState) Key() string {
	return s.key
}

func (s mockState) Clone() game.State {
	return s
}

// mockGame plays out a scripted transition table.
type mockGame struct {
	current   game.State
	actions   map[string][]game.Action
	successor map[string]map[game.Action]game.State
	winners   map[string]game.Mark // Presence marks a state terminal
}

func (g *mockGame) CurrentState() game.State {
	return g.current
}

func (g *mockGame) LegalActions(s game.State) []game.Action {
	return g.actions[s.Key()]
}

func (g *mockGame) Apply(s game.State, a game.Action, m game.Mark) game.State {
	next, ok := g.successor[s.Key()][a]
	if !ok {
		panic(fmt.Sprintf("no scripted successor for %s under %s", s.Key(), a))
	}
	return next
}

func (g *mockGame) IsTerminal(s game.State) (bool, game.Mark) {
	winner, ok := g.winners[s.Key()]
	return ok, winner
}

func (g *mockGame) Play(a game.Action, m game.Mark) error {
	g.current = g.Apply(g.current, a, m)
	return nil
}

// rewardingGame overrides reward computation with a constant.
type rewardingGame struct {
	*game.TicTacToe
	reward float64
}

func (g *rewardingGame) Reward(s game.State, m game.Mark) float64 {
	return g.reward
}

// firstActionPolicy always picks the first legal action.
type firstActionPolicy struct {
	game game.Game
}

func (p firstActionPolicy) SelectAction(s game.State) game.Action {
	actions := p.game.LegalActions(s)
	if len(actions) == 0 {
		panic("no legal actions to select from")
	}
	return actions[0]
}
