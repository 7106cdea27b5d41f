package searcher

import (
	"fmt"
	"io"

	"mcts/game"

	"github.com/muesli/termenv"
)

// treeNode is the read-only view both node kinds expose for display.
type treeNode interface {
	label() string
	treeState() game.State
	treeChildren() []treeNode
	treeOwner() bool
}

var profile = termenv.ColorProfile()

// writeTree renders the subtree under root in preorder, indented by depth
// and skipping terminal subtrees. An explicit stack replaces recursion so
// deep trees cannot blow the call stack.
func writeTree(w io.Writer, root treeNode, isTerminal func(game.State) bool) {
	type frame struct {
		node  treeNode
		depth int
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if isTerminal(top.node.treeState()) {
			continue
		}

		line := termenv.String(top.node.label())
		if top.node.treeOwner() {
			line = line.Foreground(profile.Color("1")) // Opponent-owned: red
		} else {
			line = line.Foreground(profile.Color("2")) // Agent-owned: green
		}
		for i := 0; i < top.depth; i++ {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprintln(w, line.String())

		// Push in reverse so children print in enumeration order.
		kids := top.node.treeChildren()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: kids[i], depth: top.depth + 1})
		}
	}
}
