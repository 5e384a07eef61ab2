package game

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Grid is an immutable game position: the cells plus the side to move.
// It is a value type, copying a Grid copies the whole board.
type Grid struct {
	cells [N][N]Cell
	next  Side
}

// NewGame returns the opening position: A holds the top-left corner,
// B mirrors it in the bottom-right corner, A moves first.
func NewGame() Grid {
	var g Grid
	g.cells[2][0] = PieceA
	g.cells[1][0] = PieceA
	g.cells[0][0] = PieceA
	g.cells[0][1] = PieceA
	g.cells[0][2] = PieceA
	g.cells[N-3][N-1] = PieceB
	g.cells[N-2][N-1] = PieceB
	g.cells[N-1][N-1] = PieceB
	g.cells[N-1][N-2] = PieceB
	g.cells[N-1][N-3] = PieceB
	g.next = SideA
	return g
}

func NewGrid(cells [N][N]Cell, next Side) Grid {
	return Grid{cells: cells, next: next}
}

func (g Grid) At(row, col int) Cell {
	return g.cells[row][col]
}

func (g Grid) Cells() [N][N]Cell {
	return g.cells
}

// Next returns the side to move.
func (g Grid) Next() Side {
	return g.next
}

// Count returns the number of pieces of each side.
func (g Grid) Count() (a, b int) {
	for r := 0; r < N; r++ {
		for c := 0; c < N; c++ {
			switch g.cells[r][c] {
			case PieceA:
				a++
			case PieceB:
				b++
			}
		}
	}
	return a, b
}

// CountOf returns the number of pieces owned by side.
func (g Grid) CountOf(side Side) int {
	a, b := g.Count()
	if side == SideA {
		return a
	}
	return b
}

func (g Grid) Hash() StateHash {
	hasher := fnv.New64a()

	var buf [N*N + 1]byte
	for r := 0; r < N; r++ {
		for c := 0; c < N; c++ {
			buf[r*N+c] = byte(g.cells[r][c])
		}
	}
	buf[N*N] = byte(g.next)
	hasher.Write(buf[:])

	return StateHash(hasher.Sum64())
}

func (g Grid) String() string {
	var sb strings.Builder
	for r := 0; r < N; r++ {
		if r != 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < N; c++ {
			if c != 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g.cells[r][c].String())
		}
	}
	return sb.String()
}

// ParseGrid reads the String format back. Rows may also be written
// without separators ("A.B..A"). Blank lines are ignored.
func ParseGrid(text string, next Side) (Grid, error) {
	var g Grid
	g.next = next

	row := 0
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 1 && len(fields[0]) == N {
			fields = strings.Split(fields[0], "")
		}
		if row >= N {
			return Grid{}, fmt.Errorf("%w: more than %d rows", ErrMalformedGrid, N)
		}
		if len(fields) != N {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, row, len(fields), N)
		}
		for col, field := range fields {
			switch field {
			case "A", "a":
				g.cells[row][col] = PieceA
			case "B", "b":
				g.cells[row][col] = PieceB
			case ".":
				g.cells[row][col] = Empty
			default:
				return Grid{}, fmt.Errorf("%w: unknown cell %q at (%d,%d)", ErrMalformedGrid, field, row, col)
			}
		}
		row++
	}
	if row != N {
		return Grid{}, fmt.Errorf("%w: %d rows, want %d", ErrMalformedGrid, row, N)
	}
	return g, nil
}

func inBounds(row, col int) bool {
	return row >= 0 && row < N && col >= 0 && col < N
}
