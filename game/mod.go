package game

import (
	"errors"
	"fmt"
	"strings"

	"snakeflip/meta"
)

// N is the compile-time side length of the grid.
const N = meta.BOARD_SIZE

type StateHash uint64

var (
	ErrOutOfBound    = errors.New("out of bound")
	ErrWrongTurn     = errors.New("wrong turn")
	ErrStuck         = errors.New("destination occupied")
	ErrMalformedGrid = errors.New("malformed grid")
)

// Side identifies one of the two players.
type Side uint8

const (
	SideA Side = iota
	SideB
)

func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Cell returns the piece colour owned by the side.
func (s Side) Cell() Cell {
	if s == SideA {
		return PieceA
	}
	return PieceB
}

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

func ParseSide(text string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "A":
		return SideA, nil
	case "B":
		return SideB, nil
	}
	return SideA, fmt.Errorf("unknown side %q", text)
}

// Cell is the content of one square of the grid.
type Cell uint8

const (
	Empty Cell = iota
	PieceA
	PieceB
)

func (c Cell) String() string {
	switch c {
	case PieceA:
		return "A"
	case PieceB:
		return "B"
	}
	return "."
}

// Direction is a unit step along one axis.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in enumeration order.
var Directions = [...]Direction{Up, Down, Left, Right}

// Offset returns the (row, column) delta of the direction.
func (d Direction) Offset() (dr, dc int, ok bool) {
	switch d {
	case Up:
		return -1, 0, true
	case Down:
		return 1, 0, true
	case Left:
		return 0, -1, true
	case Right:
		return 0, 1, true
	}
	return 0, 0, false
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "U"
	case Down:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "?"
}

func (d Direction) MarshalText() ([]byte, error) {
	if _, _, ok := d.Offset(); !ok {
		return nil, fmt.Errorf("unknown direction %d", d)
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// ParseDirection accepts U, D, L, R in either case.
func ParseDirection(text string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "U":
		return Up, nil
	case "D":
		return Down, nil
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	}
	return Up, fmt.Errorf("unknown direction %q", text)
}

// Move picks up the piece at (Row, Col) and slides it one cell towards Dir.
type Move struct {
	Row int       `json:"row"`
	Col int       `json:"col"`
	Dir Direction `json:"dir"`
}

// Destination returns the target cell of the move. ok is false for an unknown direction.
func (m Move) Destination() (row, col int, ok bool) {
	dr, dc, ok := m.Dir.Offset()
	return m.Row + dr, m.Col + dc, ok
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)%s", m.Row, m.Col, m.Dir)
}

// Evaluates a grid to a score from the computer's perspective, higher is better for computer.
type Evaluate func(g Grid, computer Side) float64
