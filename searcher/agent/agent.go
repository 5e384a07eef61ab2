package agent

import (
	"snakeflip/experiments/metrics"
	"snakeflip/game"
)

type Agent interface {
	// FindMove returns a move for the side to move and performance metrics (if collected) from the simulation process
	FindMove(g game.Grid) (game.Move, metrics.SearchMetric)
}
