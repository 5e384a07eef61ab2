package game

// WinScore is the score of a decided game, larger than any heuristic value.
const WinScore = 1e9

// pieceOffset keeps the heuristic of undecided positions mostly positive.
const pieceOffset = 5

// EvaluatePieces scores decided games as +/-WinScore for computer and
// undecided ones as (opponent pieces - own pieces) + 5.
func EvaluatePieces(g Grid, computer Side) float64 {
	if score, ok := decided(g, computer); ok {
		return score
	}
	own := g.CountOf(computer)
	opponent := g.CountOf(computer.Other())
	return float64(opponent-own) + pieceOffset
}

// EvaluateMaterial is the mirror heuristic, (own pieces - opponent pieces) + 5,
// rewarding positions closer to the winning count.
func EvaluateMaterial(g Grid, computer Side) float64 {
	if score, ok := decided(g, computer); ok {
		return score
	}
	own := g.CountOf(computer)
	opponent := g.CountOf(computer.Other())
	return float64(own-opponent) + pieceOffset
}

func decided(g Grid, computer Side) (float64, bool) {
	status := g.Status()
	if !status.Terminal() {
		return 0, false
	}
	if status.Side == computer {
		return WinScore, true
	}
	return -WinScore, true
}
