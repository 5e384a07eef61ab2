package agent

import (
	"math"
	"slices"

	"golang.org/x/exp/rand"

	"snakeflip/experiments/metrics"
	"snakeflip/game"
	"snakeflip/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. It
// samples moves in proportion to visits^(1/temperature).
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(g game.Grid) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(g, g.Next())
	policy = adjustTemperature(policy, a.temperature)
	return sample(policy, a.rng.Float64()), metric
}

func adjustTemperature(policy map[game.Move]float64, temperature float64) map[game.Move]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Move]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	if sum == 0 { // Nothing visited, fall back to uniform
		for move := range adjusted {
			adjusted[move] = 1 / float64(len(adjusted))
		}
		return adjusted
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the policy in a fixed move order so a given draw always
// selects the same move.
func sample(policy map[game.Move]float64, sampled float64) game.Move {
	moves := make([]game.Move, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	slices.SortFunc(moves, compareMoves)

	cumulative := 0.0
	var lastMove game.Move
	for _, move := range moves {
		lastMove = move
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}

func compareMoves(a, b game.Move) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	if a.Col != b.Col {
		return a.Col - b.Col
	}
	return int(a.Dir) - int(b.Dir)
}
