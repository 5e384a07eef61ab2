package agent

import (
	"snakeflip/experiments/metrics"
	"snakeflip/game"
	"snakeflip/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(g game.Grid) (game.Move, metrics.SearchMetric) {
	return a.mcts.FindMove(g, g.Next())
}
