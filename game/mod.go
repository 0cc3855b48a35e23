package game

// Move is an action in the game's fixed move space. Implementations must be
// comparable, since the searcher matches moves with ==.
type Move interface {
	// Index is the stable slot of the move in [0, K)
	Index() int
}

// State is a mutable position. Play changes the receiver in place, so callers
// that need the original position should Clone it first.
type State interface {
	Clone() State
	// LegalMoves is empty only when the position is terminal
	LegalMoves() []Move
	Play(Move)
	Player1Turn() bool
	WhiteWin() bool
	BlackWin() bool
	// Encode returns a fixed-shape numeric encoding of the position
	Encode() []float64
}

type Winner int

const (
	None Winner = iota
	White
	Black
)

func (w Winner) String() string {
	switch w {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

func IsTerminal(state State) bool {
	return state.WhiteWin() || state.BlackWin()
}

// WinnerOf reports which side won, or None while the game is ongoing.
func WinnerOf(state State) Winner {
	switch {
	case state.WhiteWin():
		return White
	case state.BlackWin():
		return Black
	default:
		return None
	}
}
