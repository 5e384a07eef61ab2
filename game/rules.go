package game

import "fmt"

type StatusKind uint8

const (
	Free StatusKind = iota
	Win
)

// Status tells whether the game is over. For Win, Side is the winner,
// for Free it is the side to move.
type Status struct {
	Kind StatusKind
	Side Side
}

func (s Status) Terminal() bool {
	return s.Kind == Win
}

func (s Status) String() string {
	if s.Kind == Win {
		return "win " + s.Side.String()
	}
	return "free " + s.Side.String()
}

// Apply validates m against the grid and returns the position after the
// move and its single flip pass. The receiver is never modified.
func (g Grid) Apply(m Move) (Grid, error) {
	destRow, destCol, ok := m.Destination()
	if !ok || !inBounds(m.Row, m.Col) || !inBounds(destRow, destCol) {
		return Grid{}, fmt.Errorf("%w: %v", ErrOutOfBound, m)
	}
	if g.cells[m.Row][m.Col] != g.next.Cell() {
		return Grid{}, fmt.Errorf("%w: %v is not a piece of %v", ErrWrongTurn, m, g.next)
	}
	if g.cells[destRow][destCol] != Empty {
		return Grid{}, fmt.Errorf("%w: %v", ErrStuck, m)
	}

	next := g
	next.cells[m.Row][m.Col] = Empty
	next.cells[destRow][destCol] = g.next.Cell()
	next.next = g.next.Other()
	return next.flip(), nil
}

// Status reports a win once one side has no pieces left while the other still has some.
func (g Grid) Status() Status {
	a, b := g.Count()
	switch {
	case a == 0 && b > 0:
		return Status{Kind: Win, Side: SideB}
	case b == 0 && a > 0:
		return Status{Kind: Win, Side: SideA}
	}
	return Status{Kind: Free, Side: g.next}
}

// LegalMoves lists every move of the side to move whose destination is
// inside the grid and empty, row-major, directions in Directions order.
func (g Grid) LegalMoves() []Move {
	own := g.next.Cell()
	moves := make([]Move, 0, 4*N)
	for r := 0; r < N; r++ {
		for c := 0; c < N; c++ {
			if g.cells[r][c] != own {
				continue
			}
			for _, dir := range Directions {
				dr, dc, _ := dir.Offset()
				if inBounds(r+dr, c+dc) && g.cells[r+dr][c+dc] == Empty {
					moves = append(moves, Move{Row: r, Col: c, Dir: dir})
				}
			}
		}
	}
	return moves
}
