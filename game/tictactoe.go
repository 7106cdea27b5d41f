package game

import (
	"fmt"
	"strings"
)

const boardSize = 3

// Cell addresses one square of the tic-tac-toe board.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Board is a tic-tac-toe position.
type Board struct {
	cells [boardSize][boardSize]Mark
}

func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(boardSize * boardSize)
	for _, row := range b.cells {
		for _, m := range row {
			sb.WriteString(m.String())
		}
	}
	return sb.String()
}

func (b *Board) Clone() State {
	clone := *b
	return &clone
}

func (b *Board) At(c Cell) Mark {
	return b.cells[c.Row][c.Col]
}

func (b *Board) String() string {
	var sb strings.Builder
	for i, row := range b.cells {
		for j, m := range row {
			sb.WriteString(m.String())
			if j < boardSize-1 {
				sb.WriteString(" ")
			}
		}
		if i < boardSize-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// TicTacToe is the 3x3 reference game. It holds the authoritative live
// position; all rule queries are pure functions over a State.
type TicTacToe struct {
	state *Board
}

func NewTicTacToe() *TicTacToe {
	return &TicTacToe{state: &Board{}}
}

func (t *TicTacToe) CurrentState() State {
	return t.state
}

func (t *TicTacToe) LegalActions(s State) []Action {
	board := s.(*Board)
	var actions []Action
	for i := 0; i < boardSize; i++ {
		for j := 0; j < boardSize; j++ {
			if board.cells[i][j] == NoMark {
				actions = append(actions, Cell{Row: i, Col: j})
			}
		}
	}
	return actions
}

func (t *TicTacToe) Apply(s State, a Action, m Mark) State {
	board := s.Clone().(*Board)
	cell := a.(Cell)
	if board.cells[cell.Row][cell.Col] != NoMark {
		panic(fmt.Sprintf("cell %s is already marked %s", cell, board.cells[cell.Row][cell.Col]))
	}
	board.cells[cell.Row][cell.Col] = m
	return board
}

func (t *TicTacToe) IsTerminal(s State) (bool, Mark) {
	board := s.(*Board)

	lines := [][boardSize]Cell{
		// Rows
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		// Columns
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		// Diagonals
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}

	for _, line := range lines {
		first := board.At(line[0])
		if first == NoMark {
			continue
		}
		if board.At(line[1]) == first && board.At(line[2]) == first {
			return true, first
		}
	}

	for _, row := range board.cells {
		for _, m := range row {
			if m == NoMark {
				return false, NoMark
			}
		}
	}
	return true, NoMark // Full board, no winner
}

func (t *TicTacToe) Play(a Action, m Mark) error {
	cell, ok := a.(Cell)
	if !ok {
		return fmt.Errorf("unexpected action type %T", a)
	}
	if cell.Row < 0 || cell.Row >= boardSize || cell.Col < 0 || cell.Col >= boardSize {
		return fmt.Errorf("cell %s is off the board", cell)
	}
	if t.state.cells[cell.Row][cell.Col] != NoMark {
		return fmt.Errorf("cell %s is already marked %s", cell, t.state.cells[cell.Row][cell.Col])
	}
	next := t.Apply(t.state, a, m)
	t.state = next.(*Board)
	return nil
}
