package game

type Axis uint8

const (
	Row Axis = iota
	Column
)

// Tendency is the colour a snake would turn its cells into.
type Tendency uint8

const (
	Neutral Tendency = iota
	ToA
	ToB
)

func (t Tendency) Cell() Cell {
	switch t {
	case ToA:
		return PieceA
	case ToB:
		return PieceB
	}
	return Empty
}

func (t Tendency) String() string {
	switch t {
	case ToA:
		return "A"
	case ToB:
		return "B"
	}
	return "-"
}

// Snake is a maximal run of alternating pieces along a row or column.
// Index is the fixed row (or column) and [Begin, End] the inclusive span.
type Snake struct {
	Axis     Axis
	Index    int
	Begin    int
	End      int
	Tendency Tendency
}

// Intersects reports whether a row snake and a column snake share a cell.
func (s Snake) Intersects(other Snake) bool {
	if s.Axis == other.Axis {
		return false
	}
	return s.Begin <= other.Index && other.Index <= s.End &&
		other.Begin <= s.Index && s.Index <= other.End
}

// paint relabels the whole span with the snake's tendency.
func (s Snake) paint(g *Grid) {
	cell := s.Tendency.Cell()
	if cell == Empty {
		return
	}
	for p := s.Begin; p <= s.End; p++ {
		if s.Axis == Row {
			g.cells[s.Index][p] = cell
		} else {
			g.cells[p][s.Index] = cell
		}
	}
}

// FindSnakes returns every row snake followed by every column snake.
func FindSnakes(g Grid) []Snake {
	snakes := make([]Snake, 0, 2*N)
	for r := 0; r < N; r++ {
		snakes = scanLine(snakes, Row, r, func(p int) Cell { return g.cells[r][p] })
	}
	for c := 0; c < N; c++ {
		snakes = scanLine(snakes, Column, c, func(p int) Cell { return g.cells[p][c] })
	}
	return snakes
}

func scanLine(snakes []Snake, axis Axis, index int, at func(p int) Cell) []Snake {
	emit := func(begin, end int) {
		if end <= begin {
			return
		}
		snakes = append(snakes, Snake{
			Axis:     axis,
			Index:    index,
			Begin:    begin,
			End:      end,
			Tendency: tendencyOf(at(begin), at(end)),
		})
	}

	p := 0
	for p < N {
		if at(p) == Empty {
			p++
			continue
		}
		begin, colour := p, at(p)
		for p < N && at(p) != Empty {
			if ((p-begin)%2 == 0) != (at(p) == colour) {
				emit(begin, p-1)
				begin, colour = p, at(p)
			}
			p++
		}
		emit(begin, p-1)
	}
	return snakes
}

func tendencyOf(first, last Cell) Tendency {
	switch {
	case first == PieceA && last == PieceA:
		return ToA
	case first == PieceB && last == PieceB:
		return ToB
	}
	return Neutral
}
