package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"snakeflip/game"
)

func mustParse(t *testing.T, text string, next game.Side) game.Grid {
	t.Helper()
	g, err := game.ParseGrid(text, next)
	require.NoError(t, err)
	return g
}

func sum(policy map[game.Move]float64) float64 {
	total := 0.0
	for _, visits := range policy {
		total += visits
	}
	return total
}

func TestNewMCTS(t *testing.T) {
	require.Panics(t, func() { NewMCTS(4) }, "MCTS needs a search budget")

	m := NewMCTS(0, WithEpisodes(10), WithExplorationParam(-1), WithEvaluationFn(nil))
	require.Equal(t, 1, m.goroutines, "MCTS should run at least one worker")
	require.Equal(t, DefaultExploration, m.exploration, "Invalid options should be ignored")
	require.NotNil(t, m.evaluate)
}

func TestSimulate(t *testing.T) {
	t.Run("sequential policy counts every playout", func(t *testing.T) {
		g := game.NewGame()
		m := NewMCTS(1, WithEpisodes(500), WithSeed(1), WithMetrics())

		policy, metric := m.Simulate(g, game.SideA)

		require.Len(t, policy, len(g.LegalMoves()))
		for _, move := range g.LegalMoves() {
			require.Contains(t, policy, move)
		}
		require.Equal(t, 500.0, sum(policy), "Each playout should pass through exactly one root move")
		require.Equal(t, 500, metric.Episodes)
		require.Positive(t, metric.TableSize)
	})

	t.Run("sequential policy counts each playout once despite transpositions", func(t *testing.T) {
		// Deep lines return to positions one move from the root, those
		// playouts must not be credited to that root move
		for _, seed := range []uint64{1, 2, 3} {
			for _, episodes := range []int{1000, 2000, 5000} {
				policy, _ := NewMCTS(1, WithEpisodes(episodes), WithSeed(seed)).Simulate(game.NewGame(), game.SideA)
				require.Equal(t, float64(episodes), sum(policy), "seed %d, %d episodes", seed, episodes)
			}
		}
	})

	t.Run("parallel search runs the exact budget", func(t *testing.T) {
		g := game.NewGame()
		m := NewMCTS(8, WithEpisodes(2000), WithMetrics())

		s := m.newSearch(g, game.SideA)
		metric := s.run()

		require.Equal(t, 2000, metric.Episodes)
		require.Equal(t, 8, metric.Goroutines)
		require.Equal(t, int64(2000), s.table.node(s.root).visits.Load(), "Every playout starts at the root")
		require.LessOrEqual(t, sum(s.policy()), 2000.0, "Expansion collisions stop at the root without a move")
		require.Positive(t, sum(s.policy()))
	})

	t.Run("seeded sequential search is reproducible", func(t *testing.T) {
		g := game.NewGame()
		first, _ := NewMCTS(1, WithEpisodes(300), WithSeed(7)).Simulate(g, game.SideA)
		second, _ := NewMCTS(1, WithEpisodes(300), WithSeed(7)).Simulate(g, game.SideA)
		require.Equal(t, first, second)
	})

	t.Run("duration budget", func(t *testing.T) {
		m := NewMCTS(2, WithDuration(20*time.Millisecond), WithMetrics())

		_, metric := m.Simulate(game.NewGame(), game.SideA)

		require.Positive(t, metric.Episodes)
		require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
	})

	t.Run("cycles reuse the stored evaluation", func(t *testing.T) {
		// Lone pieces can walk back and forth, revisiting the root
		g := mustParse(t, `
			A . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . B`, game.SideA)
		m := NewMCTS(1, WithEpisodes(3000), WithSeed(3), WithMetrics())

		policy, metric := m.Simulate(g, game.SideA)

		require.Positive(t, metric.Cycles, "Search should detect positions repeating along a path")
		require.Equal(t, 3000.0, sum(policy))
	})
}

func TestFindMove(t *testing.T) {
	t.Run("opening move is legal", func(t *testing.T) {
		g := game.NewGame()
		move, _ := NewMCTS(4, WithEpisodes(1000)).FindMove(g, game.SideA)
		require.Contains(t, g.LegalMoves(), move)
	})

	t.Run("takes an immediate win for A", func(t *testing.T) {
		// (0,3) Left closes A B A and converts the last B piece
		g := mustParse(t, `
			A B . A . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, game.SideA)

		move, metric := NewMCTS(1, WithEpisodes(200), WithSeed(5), WithMetrics()).FindMove(g, game.SideA)

		require.Equal(t, game.Move{Row: 0, Col: 3, Dir: game.Left}, move)
		require.Positive(t, metric.TerminalHits)
	})

	t.Run("takes an immediate win for B", func(t *testing.T) {
		g := mustParse(t, `
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . B . A B`, game.SideB)

		move, _ := NewMCTS(2, WithEpisodes(400), WithSeed(5)).FindMove(g, game.SideB)

		require.Equal(t, game.Move{Row: 5, Col: 2, Dir: game.Right}, move)
	})

	t.Run("decided game", func(t *testing.T) {
		g := mustParse(t, `
			A A . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .`, game.SideB)
		require.Panics(t, func() { NewMCTS(1, WithEpisodes(10)).FindMove(g, game.SideB) })
	})

	t.Run("blocked side", func(t *testing.T) {
		// A fills the board except for one hole B cannot reach
		g := mustParse(t, `
			B A A A A A
			A A A A A A
			A A A A A A
			A A A A A A
			A A A A A A
			A A A A A .`, game.SideB)
		require.Panics(t, func() { NewMCTS(1, WithEpisodes(10)).FindMove(g, game.SideB) })
	})
}
