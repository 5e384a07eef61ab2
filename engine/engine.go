package engine

import (
	"snakeflip/experiments/metrics"
	"snakeflip/meta"
)

const MaxTurns = meta.MAX_TURNS

type Engine interface {
	// Run starts a game till there's a winner or a max number of moves is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
