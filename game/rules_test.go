package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyRejectsInvalidMoves(t *testing.T) {
	g := NewGame()

	cases := []struct {
		name string
		move Move
		err  error
	}{
		{"origin outside the grid", Move{Row: -1, Col: 0, Dir: Down}, ErrOutOfBound},
		{"origin past the last row", Move{Row: N, Col: 0, Dir: Up}, ErrOutOfBound},
		{"destination outside the grid", Move{Row: 0, Col: 0, Dir: Up}, ErrOutOfBound},
		{"destination past the left edge", Move{Row: 2, Col: 0, Dir: Left}, ErrOutOfBound},
		{"unknown direction", Move{Row: 2, Col: 0, Dir: Direction(9)}, ErrOutOfBound},
		{"empty origin", Move{Row: 3, Col: 3, Dir: Up}, ErrWrongTurn},
		{"opponent piece", Move{Row: N - 1, Col: N - 1, Dir: Up}, ErrWrongTurn},
		{"occupied destination", Move{Row: 0, Col: 0, Dir: Right}, ErrStuck},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Apply(tc.move)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestApplyOpeningMove(t *testing.T) {
	g := NewGame()
	require.Equal(t, Empty, g.At(2, 1), "Destination should be empty before the move")

	got, err := g.Apply(Move{Row: 2, Col: 0, Dir: Right})

	require.NoError(t, err)
	expected := mustParse(t, `
		A A A . . .
		A . . . . .
		. A . . . .
		. . . . . B
		. . . . . B
		. . . B B B`, SideB)
	require.Equal(t, expected, got, "Only the moved piece should change without snakes")
	require.Equal(t, PieceA, got.At(2, 1))
	require.Equal(t, SideB, got.Next(), "Turn should pass to B")
	require.Equal(t, NewGame(), g, "Input grid should not change")
}

func TestApplyRunsSingleFlipPass(t *testing.T) {
	g := mustParse(t, `
		. A . . . .
		B B B . . .
		. . . . . .
		. A . . . .
		. . . . . .
		. . . . . .`, SideA)

	got, err := g.Apply(Move{Row: 3, Col: 1, Dir: Up})

	require.NoError(t, err)
	expected := mustParse(t, `
		. A . . . .
		B A B . . .
		. A . . . .
		. . . . . .
		. . . . . .
		. . . . . .`, SideB)
	require.Equal(t, expected, got, "Column snake A-B-A should flip its middle piece")

	// The flipped row B-A-B is a snake again, but it must wait for the next move
	require.NotEqual(t, got, got.flip(), "A second pass would flip again")

	moved := g
	moved.cells[3][1] = Empty
	moved.cells[2][1] = PieceA
	moved.next = SideB
	require.Equal(t, moved.flip(), got, "Apply should equal one flip pass over the moved grid")
}

func TestApplyIsDeterministic(t *testing.T) {
	g := NewGame()
	for _, move := range g.LegalMoves() {
		first, err := g.Apply(move)
		require.NoError(t, err)
		second, err := g.Apply(move)
		require.NoError(t, err)
		require.Equal(t, first, second, "Move %v should always give the same grid", move)
	}
}

func TestStatus(t *testing.T) {
	t.Run("free position reports the side to move", func(t *testing.T) {
		require.Equal(t, Status{Kind: Free, Side: SideA}, NewGame().Status())
		require.False(t, NewGame().Status().Terminal())
	})

	t.Run("no A pieces left", func(t *testing.T) {
		g := mustParse(t, `
			. . . . . .
			. . B . . .
			. . . . . .
			. . . . . .
			. . . . B .
			. . . . . .`, SideA)
		require.Equal(t, Status{Kind: Win, Side: SideB}, g.Status())
		require.True(t, g.Status().Terminal())
	})

	t.Run("no B pieces left", func(t *testing.T) {
		g := mustParse(t, `
			A . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, SideB)
		require.Equal(t, Status{Kind: Win, Side: SideA}, g.Status())
	})

	t.Run("empty grid is not a win", func(t *testing.T) {
		var g Grid
		require.Equal(t, Status{Kind: Free, Side: SideA}, g.Status())
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("opening moves for A", func(t *testing.T) {
		expected := []Move{
			{Row: 0, Col: 1, Dir: Down},
			{Row: 0, Col: 2, Dir: Down},
			{Row: 0, Col: 2, Dir: Right},
			{Row: 1, Col: 0, Dir: Right},
			{Row: 2, Col: 0, Dir: Down},
			{Row: 2, Col: 0, Dir: Right},
		}
		require.Equal(t, expected, NewGame().LegalMoves())
	})

	t.Run("every listed move applies", func(t *testing.T) {
		g := NewGrid(NewGame().Cells(), SideB)
		moves := g.LegalMoves()
		require.Len(t, moves, 6, "B mirrors A's opening mobility")
		for _, move := range moves {
			_, err := g.Apply(move)
			require.NoError(t, err, "Move %v should be legal", move)
		}
	})

	t.Run("side without pieces has no moves", func(t *testing.T) {
		g := mustParse(t, `
			. . . . . .
			. . B . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, SideA)
		require.Empty(t, g.LegalMoves())
	})
}
