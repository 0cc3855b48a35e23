package hex

import (
	"testing"
	"uctzero/game"

	"github.com/stretchr/testify/require"
)

func play(b *Board, cells ...int) {
	for _, c := range cells {
		b.Play(Move{Cell: c})
	}
}

func TestBoardPlay(t *testing.T) {
	t.Run("alternating turns while the game is ongoing", func(t *testing.T) {
		b := New(3)
		require.True(t, b.Player1Turn(), "White should move first")

		play(b, 0)

		require.False(t, b.Player1Turn(), "Turn should pass to black")
		require.Equal(t, WhiteStone, b.At(0, 0))
		require.Len(t, b.LegalMoves(), 8, "Occupied cell should not be legal")
	})

	t.Run("white connecting top and bottom", func(t *testing.T) {
		b := New(3)
		// white: column 0 top to bottom, black: scattered on the right
		play(b, 0, 2, 3, 5, 6)

		require.True(t, b.WhiteWin(), "White should win")
		require.False(t, b.BlackWin())
		require.True(t, b.Player1Turn(), "Winning move should not pass the turn")
		require.Empty(t, b.LegalMoves(), "Finished game should have no legal moves")
		require.Equal(t, game.White, game.WinnerOf(b))
	})

	t.Run("black connecting left and right", func(t *testing.T) {
		b := New(3)
		// black: row 1 left to right
		play(b, 0, 3, 1, 4, 8, 5)

		require.True(t, b.BlackWin(), "Black should win")
		require.False(t, b.WhiteWin())
		require.False(t, b.Player1Turn(), "Winning move should not pass the turn")
	})

	t.Run("diagonal neighbours connecting a group", func(t *testing.T) {
		b := New(2)
		// white 1 (row 0, col 1) and white 2 (row 1, col 0) are adjacent
		play(b, 1, 0, 2)

		require.True(t, b.WhiteWin(), "Cells (0,1) and (1,0) should be adjacent")
	})

	t.Run("panicking on an occupied cell", func(t *testing.T) {
		b := New(3)
		play(b, 4)

		require.Panics(t, func() { b.Play(Move{Cell: 4}) })
	})
}

func TestBoardTermination(t *testing.T) {
	t.Run("filling the board always produces a winner", func(t *testing.T) {
		for size := 1; size <= 5; size++ {
			b := New(size)
			for !game.IsTerminal(b) {
				b.Play(b.LegalMoves()[0])
			}
			require.NotEqual(t, game.None, game.WinnerOf(b), "Hex should have no draws")
		}
	})
}

func TestBoardClone(t *testing.T) {
	b := New(3)
	play(b, 4)

	clone := b.Clone().(*Board)
	clone.Play(Move{Cell: 0})

	require.Equal(t, Empty, b.At(0, 0), "Mutating the clone should not affect the original")
	require.Equal(t, BlackStone, clone.At(0, 0))
	require.False(t, b.Player1Turn())
	require.True(t, clone.Player1Turn())
}

func TestBoardEncode(t *testing.T) {
	b := New(2)
	play(b, 0, 3)

	got := b.Encode()

	require.Equal(t, []float64{
		1, 0, 0, 0, // white
		0, 0, 0, 1, // black
		1, 1, 1, 1, // white to move
	}, got)
	require.Len(t, got, Planes*MoveSpace(2))
}
