// meta/meta.go
package meta

import "math"

// BOARD_SIZE is the side length of the square board. It must be even.
const BOARD_SIZE = 6

// GO_ROUTINES defines the number of playout workers per search.
const GO_ROUTINES = 16

// PLAYOUTS defines the fixed playout budget of one search.
const PLAYOUTS = 1_000_000

// TABLE_CAPACITY is the initial capacity hint of the transposition table.
const TABLE_CAPACITY = 1 << 20

// MAX_TURNS caps self-play games, which can cycle forever.
const MAX_TURNS = 300

// EXPLORATION is the UCT exploration constant.
var EXPLORATION = math.Sqrt2
