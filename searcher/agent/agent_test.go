package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"snakeflip/game"
	"snakeflip/searcher"
)

func TestEvaluationAgent(t *testing.T) {
	g := game.NewGame()
	a := NewEvaluationAgent(searcher.NewMCTS(2, searcher.WithEpisodes(300), searcher.WithMetrics()))

	move, metric := a.FindMove(g)

	require.Contains(t, g.LegalMoves(), move)
	require.Equal(t, 300, metric.Episodes)
}

func TestTrainingAgent(t *testing.T) {
	require.Panics(t, func() { NewTrainingAgent(searcher.NewMCTS(1, searcher.WithEpisodes(1)), 0, 1) })

	g := game.NewGame()
	a := NewTrainingAgent(searcher.NewMCTS(1, searcher.WithEpisodes(200)), 1, 42)
	move, _ := a.FindMove(g)
	require.Contains(t, g.LegalMoves(), move)
}

func TestRandomAgent(t *testing.T) {
	g := game.NewGame()
	a := NewRandomAgent(9)
	seen := map[game.Move]bool{}
	for i := 0; i < 200; i++ {
		move, _ := a.FindMove(g)
		require.Contains(t, g.LegalMoves(), move)
		seen[move] = true
	}
	require.Len(t, seen, len(g.LegalMoves()), "Every legal move should eventually be drawn")
}

func TestAdjustTemperature(t *testing.T) {
	a := game.Move{Row: 0, Col: 0, Dir: game.Down}
	b := game.Move{Row: 2, Col: 0, Dir: game.Right}

	t.Run("unit temperature normalizes visits", func(t *testing.T) {
		got := adjustTemperature(map[game.Move]float64{a: 1, b: 3}, 1)
		require.InDelta(t, 0.25, got[a], 1e-12)
		require.InDelta(t, 0.75, got[b], 1e-12)
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		got := adjustTemperature(map[game.Move]float64{a: 1, b: 3}, 0.5)
		require.InDelta(t, 0.1, got[a], 1e-12)
		require.InDelta(t, 0.9, got[b], 1e-12)
	})

	t.Run("no visits falls back to uniform", func(t *testing.T) {
		got := adjustTemperature(map[game.Move]float64{a: 0, b: 0}, 1)
		require.Equal(t, 0.5, got[a])
		require.Equal(t, 0.5, got[b])
	})
}

func TestSample(t *testing.T) {
	a := game.Move{Row: 0, Col: 0, Dir: game.Down}
	b := game.Move{Row: 2, Col: 0, Dir: game.Right}
	policy := map[game.Move]float64{b: 0.75, a: 0.25}

	require.Equal(t, a, sample(policy, 0), "Moves are walked in board order")
	require.Equal(t, a, sample(policy, 0.2))
	require.Equal(t, b, sample(policy, 0.3))
	require.Equal(t, b, sample(policy, 0.9999))
	require.Equal(t, b, sample(policy, 1), "Rounding leftovers go to the last move")
}
