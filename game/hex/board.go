package hex

import (
	"fmt"

	"uctzero/game"
)

type Stone int8

const (
	Empty Stone = iota
	WhiteStone
	BlackStone
)

// Planes in the board encoding: white stones, black stones, side to move.
const Planes = 3

// Move places a stone on a cell, indexed row-major.
type Move struct {
	Cell int
}

func (m Move) Index() int {
	return m.Cell
}

func (m Move) String() string {
	return fmt.Sprintf("%d", m.Cell)
}

// Board is a Hex position on a size x size rhombus. White (player 1) connects
// the top and bottom rows, black connects the left and right columns. The
// winning move does not pass the turn.
type Board struct {
	size        int
	cells       []Stone
	empty       int
	player1Turn bool
	whiteWin    bool
	blackWin    bool
}

func New(size int) *Board {
	if size < 1 {
		panic("board size must be positive")
	}
	return &Board{
		size:        size,
		cells:       make([]Stone, size*size),
		empty:       size * size,
		player1Turn: true,
	}
}

// MoveSpace is the policy vector width for a board of the given size.
func MoveSpace(size int) int {
	return size * size
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) At(row, col int) Stone {
	return b.cells[row*b.size+col]
}

func (b *Board) Clone() game.State {
	cells := make([]Stone, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:        b.size,
		cells:       cells,
		empty:       b.empty,
		player1Turn: b.player1Turn,
		whiteWin:    b.whiteWin,
		blackWin:    b.blackWin,
	}
}

func (b *Board) LegalMoves() []game.Move {
	if b.whiteWin || b.blackWin {
		return nil
	}
	moves := make([]game.Move, 0, b.empty)
	for i, stone := range b.cells {
		if stone == Empty {
			moves = append(moves, Move{Cell: i})
		}
	}
	return moves
}

func (b *Board) Play(move game.Move) {
	cell := move.Index()
	if b.whiteWin || b.blackWin {
		panic("cannot play on a finished game")
	}
	if cell < 0 || cell >= len(b.cells) || b.cells[cell] != Empty {
		panic(fmt.Sprintf("illegal move %d", cell))
	}

	stone := BlackStone
	if b.player1Turn {
		stone = WhiteStone
	}
	b.cells[cell] = stone
	b.empty--

	if b.connects(cell, stone) {
		if stone == WhiteStone {
			b.whiteWin = true
		} else {
			b.blackWin = true
		}
		return
	}
	b.player1Turn = !b.player1Turn
}

func (b *Board) Player1Turn() bool {
	return b.player1Turn
}

func (b *Board) WhiteWin() bool {
	return b.whiteWin
}

func (b *Board) BlackWin() bool {
	return b.blackWin
}

// Encode lays out Planes planes of size*size values each.
func (b *Board) Encode() []float64 {
	n := len(b.cells)
	out := make([]float64, Planes*n)
	for i, stone := range b.cells {
		switch stone {
		case WhiteStone:
			out[i] = 1
		case BlackStone:
			out[n+i] = 1
		}
		if b.player1Turn {
			out[2*n+i] = 1
		}
	}
	return out
}

// connects reports whether the group containing cell touches both of the
// owner's edges.
func (b *Board) connects(cell int, stone Stone) bool {
	seen := make([]bool, len(b.cells))
	stack := []int{cell}
	seen[cell] = true
	first, last := false, false

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		row, col := c/b.size, c%b.size
		edge := row
		if stone == BlackStone {
			edge = col
		}
		if edge == 0 {
			first = true
		}
		if edge == b.size-1 {
			last = true
		}
		if first && last {
			return true
		}

		for _, next := range b.neighbours(row, col) {
			if !seen[next] && b.cells[next] == stone {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

var directions = [6][2]int{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}}

func (b *Board) neighbours(row, col int) []int {
	out := make([]int, 0, len(directions))
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if r >= 0 && r < b.size && c >= 0 && c < b.size {
			out = append(out, r*b.size+c)
		}
	}
	return out
}

func (b *Board) String() string {
	s := ""
	for row := 0; row < b.size; row++ {
		for i := 0; i < row; i++ {
			s += " "
		}
		for col := 0; col < b.size; col++ {
			switch b.At(row, col) {
			case WhiteStone:
				s += "W "
			case BlackStone:
				s += "B "
			default:
				s += ". "
			}
		}
		s += "\n"
	}
	return s
}
