package experiments

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"snakeflip/engine"
	"snakeflip/experiments/metrics"
	"snakeflip/game"
	"snakeflip/meta"
	"snakeflip/searcher"
	"snakeflip/searcher/agent"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// Games run side by side, each search still uses its own goroutines
var ConcurrentGames = 4

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: "mcts", Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Kind: "mcts", Goroutines: 4, Duration: TimeBudget},
	{ID: 3, Kind: "mcts", Goroutines: 8, Duration: TimeBudget},
	{ID: 4, Kind: "mcts", Goroutines: 16, Duration: TimeBudget},
	{ID: 5, Kind: "mcts", Goroutines: 32, Duration: TimeBudget},
}

// RunParallelizationExperiment pairs every parallel agent against the sequential baseline
func RunParallelizationExperiment(games int) error {
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Goroutines: 1, Duration: TimeBudget}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment("parallelization", append(parallelConfigs, baseline), matchUps, games)
}

// RunExplorationExperiment pairs agents with different exploration constants
// against the reference constant at a fixed playout budget.
func RunExplorationExperiment(games int) error {
	const episodes = 2000
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Goroutines: 4, Episodes: episodes, Exploration: meta.EXPLORATION}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "mcts", Goroutines: 4, Episodes: episodes, Exploration: 0.5},
		{ID: 2, Kind: "mcts", Goroutines: 4, Episodes: episodes, Exploration: 1},
		{ID: 3, Kind: "mcts", Goroutines: 4, Episodes: episodes, Exploration: 2},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment("exploration", append(configs, baseline), matchUps, games)
}

// RunHeuristicExperiment compares both piece heuristics, a sampling
// training agent and a random baseline.
func RunHeuristicExperiment(games int) error {
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "mcts", Goroutines: 4, Duration: TimeBudget, Heuristic: "pieces"},
		{ID: 2, Kind: "mcts", Goroutines: 4, Duration: TimeBudget, Heuristic: "material"},
		{ID: 3, Kind: "random"},
		{ID: 4, Kind: "training", Goroutines: 4, Duration: TimeBudget, Heuristic: "material", Temperature: 1},
	}
	matchUps := [][]metrics.AgentConfig{
		{configs[0], configs[1]},
		{configs[1], configs[0]},
		{configs[0], configs[2]},
		{configs[1], configs[2]},
		{configs[1], configs[3]},
	}
	return runExperiment("heuristic", configs, matchUps, games)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, games int) error {
	if games <= 0 {
		games = NumGames
	}

	log.Info().Msgf("starting %s experiment...", name)

	gameRecords, moveRecords := runMatchUps(matchUps, games)

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(name)
	if err != nil {
		return err
	}
	return store(writer, configs, gameRecords, moveRecords)
}

// runMatchUps plays games for each matchup and returns the records in game order
func runMatchUps(matchUps [][]metrics.AgentConfig, games int) ([]metrics.GameRecord, []metrics.MoveRecord) {
	gameRecords := make([]metrics.GameRecord, len(matchUps)*games)
	moveMetrics := make([][]metrics.MoveMetric, len(matchUps)*games)

	var mu sync.Mutex
	finished := 0

	var g errgroup.Group
	g.SetLimit(max(ConcurrentGames, 1))
	for mi, matchup := range matchUps {
		configA, configB := matchup[0], matchup[1]
		log.Info().Msgf("queueing matchup %d of %d between agentA=%+v and agentB=%+v...", mi+1, len(matchUps), configA, configB)

		for i := 0; i < games; i++ {
			mi, i := mi, i
			id := mi*games + i
			g.Go(func() error {
				seed := uint64(id + 1)
				winner, gameMetric, moves := engine.LocalEngine(createAgent(configA, seed), createAgent(configB, seed)).Run()

				gameRecords[id] = metrics.GameRecord{
					ID:         id + 1,
					AgentA:     configA.ID,
					AgentB:     configB.ID,
					GameMetric: gameMetric,
				}
				moveMetrics[id] = moves

				mu.Lock()
				finished++
				log.Info().Msgf("completed matchup %d game %d with winner %q (%d of %d)", mi+1, i+1, winner, finished, len(gameRecords))
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	moveRecords := []metrics.MoveRecord{}
	for id, moves := range moveMetrics {
		for _, mm := range moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       id + 1,
				MoveMetric: mm,
			})
		}
	}
	return gameRecords, moveRecords
}

func store(writer *metrics.Writer, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	// Store experiment metadata
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records of run %s in %s", writer.RunID(), writer.Dir())
	return nil
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	switch config.Kind {
	case "random":
		return agent.NewRandomAgent(seed)
	case "training":
		temperature := config.Temperature
		if temperature <= 0 {
			temperature = 1
		}
		return agent.NewTrainingAgent(createMCTS(config, seed), temperature, seed)
	}
	return agent.NewEvaluationAgent(createMCTS(config, seed))
}

func createMCTS(config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExplorationParam(config.Exploration))
	}
	if config.Heuristic == "material" {
		options = append(options, searcher.WithEvaluationFn(game.EvaluateMaterial))
	}

	options = append(options, searcher.WithSeed(seed), searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
