package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"snakeflip/experiments/metrics"
	"snakeflip/game"
	"snakeflip/searcher/agent"
)

type localEngine struct {
	grid     game.Grid
	agents   [2]agent.Agent // Indexed by game.Side
	maxTurns int
}

// LocalEngine plays agentA against agentB from the opening position.
func LocalEngine(agentA, agentB agent.Agent) Engine {
	return LocalEngineFrom(game.NewGame(), agentA, agentB, MaxTurns)
}

// LocalEngineFrom plays from an arbitrary position for at most maxTurns plies.
func LocalEngineFrom(g game.Grid, agentA, agentB agent.Agent, maxTurns int) Engine {
	if agentA == nil || agentB == nil {
		panic("need two agents")
	}
	return &localEngine{
		grid:     g,
		agents:   [2]agent.Agent{game.SideA: agentA, game.SideB: agentB},
		maxTurns: maxTurns,
	}
}

// Run executes the entire game loop until a winner is found.
func (e *localEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingSide: e.grid.Next().String(),
		StartTime:    time.Now(),
	}
	log.Info().Msgf("side %v is starting", e.grid.Next())

	var moveMetrics []metrics.MoveMetric
	turn := 0
	for ; turn < e.maxTurns && !e.grid.Status().Terminal(); turn++ {
		side := e.grid.Next()
		if len(e.grid.LegalMoves()) == 0 {
			log.Warn().Msgf("side %v is blocked after %d turns", side, turn)
			break
		}

		move, searchMetric := e.agents[side].FindMove(e.grid)
		next, err := e.grid.Apply(move)
		if err != nil {
			panic(fmt.Sprintf("agent for side %v played an illegal move: %v", side, err))
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn + 1,
			Side:         side.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		if event := log.Debug(); event.Enabled() {
			event.Msgf("turn %d: %v played %v\n%s", turn+1, side, move, Render(next))
		}
		e.grid = next
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turn

	if status := e.grid.Status(); status.Terminal() {
		gameMetric.Winner = status.Side.String()
		log.Info().Msgf("game ended after %d turns with winner %v", turn, status.Side)
	} else {
		log.Info().Msgf("stopped after %d turns (no winner yet)", turn)
	}
	return gameMetric.Winner, gameMetric, moveMetrics
}
