package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"snakeflip/game"
)

// expandRoot creates a search over g whose root edges carry the given
// (value, visits) statistics, in legal move order.
func expandRoot(t *testing.T, g game.Grid, computer game.Side, stats [][2]float64) *search {
	t.Helper()
	s := NewMCTS(1, WithEpisodes(1)).newSearch(g, computer)
	root := s.table.node(s.root)
	require.True(t, root.tryExpand())
	root.expand(g)
	require.LessOrEqual(t, len(stats), len(root.moves))

	for i, stat := range stats {
		h, _ := s.table.insert(play(g, root.moves[i]))
		root.setChild(i, h)
		root.edges[i].addValue(stat[0])
		root.edges[i].visits.Store(int64(stat[1]))
	}
	return s
}

func TestPolicy(t *testing.T) {
	t.Run("unexpanded root", func(t *testing.T) {
		g := game.NewGame()
		s := NewMCTS(1, WithEpisodes(1)).newSearch(g, game.SideA)

		policy := s.policy()
		require.Len(t, policy, len(g.LegalMoves()))
		require.Zero(t, sum(policy))
		require.Equal(t, g.LegalMoves()[0], s.bestMove(), "Without statistics the first legal move is played")
	})

	t.Run("visit counts per move", func(t *testing.T) {
		g := game.NewGame()
		s := expandRoot(t, g, game.SideA, [][2]float64{{10, 2}, {30, 6}})
		moves := g.LegalMoves()

		policy := s.policy()
		require.Equal(t, 2.0, policy[moves[0]])
		require.Equal(t, 6.0, policy[moves[1]])
		require.Equal(t, 0.0, policy[moves[2]], "Moves never tried should count zero visits")
		require.Len(t, policy, len(moves))
	})
}

func TestBestMove(t *testing.T) {
	t.Run("most visited", func(t *testing.T) {
		g := game.NewGame()
		s := expandRoot(t, g, game.SideA, [][2]float64{{100, 2}, {30, 6}, {40, 5}})
		require.Equal(t, g.LegalMoves()[1], s.bestMove())
	})

	t.Run("ties go to the better mean for the computer", func(t *testing.T) {
		g := game.NewGame()
		s := expandRoot(t, g, game.SideA, [][2]float64{{10, 4}, {20, 4}})
		require.Equal(t, g.LegalMoves()[1], s.bestMove())
	})

	t.Run("child visits from transpositions do not count", func(t *testing.T) {
		g := game.NewGame()
		s := expandRoot(t, g, game.SideA, [][2]float64{{10, 3}, {10, 2}})
		// Reached 50 times through other lines, but played twice from the root
		s.table.node(s.table.node(s.root).child(1)).visits.Store(50)

		require.Equal(t, g.LegalMoves()[0], s.bestMove())
		require.Equal(t, 2.0, s.policy()[g.LegalMoves()[1]])
	})

	t.Run("ties go to the better mean for the side to move", func(t *testing.T) {
		// Searching for A while B is to move, B prefers the lower A value
		g := game.NewGrid(game.NewGame().Cells(), game.SideB)
		s := expandRoot(t, g, game.SideA, [][2]float64{{10, 4}, {20, 4}})
		require.Equal(t, g.LegalMoves()[0], s.bestMove())
	})
}
