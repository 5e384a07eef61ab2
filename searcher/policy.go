package searcher

import "snakeflip/game"

// policy returns the playouts taken along every root move, untried moves
// included with a zero count.
func (s *search) policy() map[game.Move]float64 {
	root := s.table.node(s.root)
	if !root.expanded() {
		moves := s.rootGrid.LegalMoves()
		policy := make(map[game.Move]float64, len(moves))
		for _, m := range moves {
			policy[m] = 0
		}
		return policy
	}

	policy := make(map[game.Move]float64, len(root.moves))
	for i, m := range root.moves {
		_, visits, _ := root.edges[i].stats()
		policy[m] = float64(visits)
	}
	return policy
}

// bestMove returns the most played root move, ties going to the higher
// mean value. Falls back to the first legal move when nothing was played.
func (s *search) bestMove() game.Move {
	root := s.table.node(s.root)
	if !root.expanded() {
		return s.rootGrid.LegalMoves()[0]
	}

	factor := perspective(s.computer, root.player)
	best := -1
	var bestVisits int64
	var bestMean float64
	for i := range root.edges {
		value, visits, _ := root.edges[i].stats()
		if visits == 0 {
			continue
		}
		mean := factor * value / float64(visits)
		if best < 0 || visits > bestVisits || (visits == bestVisits && mean > bestMean) {
			best, bestVisits, bestMean = i, visits, mean
		}
	}
	if best < 0 {
		return root.moves[0]
	}
	return root.moves[best]
}
