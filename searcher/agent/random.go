package agent

import (
	"golang.org/x/exp/rand"

	"snakeflip/experiments/metrics"
	"snakeflip/game"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(g game.Grid) (game.Move, metrics.SearchMetric) {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves to choose from")
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}
