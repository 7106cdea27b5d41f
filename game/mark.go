package game

// Mark identifies which side placed a piece. NoMark doubles as "empty cell"
// and "drawn game".
type Mark uint8

const (
	NoMark Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}
