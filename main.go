package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"snakeflip/engine"
	"snakeflip/experiments"
	"snakeflip/game"
	"snakeflip/meta"
	"snakeflip/searcher"
	"snakeflip/searcher/agent"
)

type config struct {
	goroutines int
	episodes   int
	duration   time.Duration
}

func main() {
	mode := flag.String("mode", "selfplay", "One of selfplay, serve, experiment")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Number of goroutines for parallel playouts")
	playouts := flag.Int("playouts", meta.PLAYOUTS, "Number of playouts per move")
	duration := flag.Duration("duration", 0, "Duration of playouts per move, replaces -playouts when set")
	games := flag.Int("games", experiments.NumGames, "Games per match up in experiment mode")
	experiment := flag.String("experiment", "parallelization", "One of parallelization, exploration, heuristic")
	port := flag.String("port", "8080", "Port of the agent server")
	remote := flag.String("remote", "", "URL of an agent server playing the side given by -computer")
	computer := flag.String("computer", "B", "Side played by the remote agent in selfplay mode")
	level := flag.String("level", "info", "Log level")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", *level, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := config{goroutines: *goroutines, episodes: *playouts, duration: *duration}
	if cfg.duration > 0 {
		cfg.episodes = 0
	}

	switch strings.ToLower(*mode) {
	case "selfplay":
		side, err := game.ParseSide(*computer)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -computer")
		}
		runSelfPlay(cfg, *remote, side)
	case "serve":
		a := agent.NewEvaluationAgent(createMCTS(cfg))
		if err := agent.StartAgentServer(*port, a); err != nil {
			log.Fatal().Err(err).Msg("agent server stopped")
		}
	case "experiment":
		if err := runExperiment(*experiment, *games); err != nil {
			log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
		}
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func runSelfPlay(cfg config, remote string, remoteSide game.Side) {
	agents := [2]agent.Agent{
		agent.NewEvaluationAgent(createMCTS(cfg)),
		agent.NewEvaluationAgent(createMCTS(cfg)),
	}
	if remote != "" {
		agents[remoteSide] = engine.RemoteAgent(remote, time.Minute)
	}

	fmt.Println(engine.Render(game.NewGame()))
	winner, gameMetric, _ := engine.LocalEngine(agents[game.SideA], agents[game.SideB]).Run()
	if winner == "" {
		fmt.Printf("No winner after %d moves (%v)\n", gameMetric.TotalMoves, gameMetric.Duration)
		return
	}
	fmt.Printf("Game over! Winner: %s after %d moves (%v)\n", winner, gameMetric.TotalMoves, gameMetric.Duration)
}

func runExperiment(name string, games int) error {
	switch name {
	case "parallelization":
		return experiments.RunParallelizationExperiment(games)
	case "exploration":
		return experiments.RunExplorationExperiment(games)
	case "heuristic":
		return experiments.RunHeuristicExperiment(games)
	}
	return fmt.Errorf("unknown experiment %q", name)
}

func createMCTS(config config) *searcher.MCTS {
	options := []searcher.Option{searcher.WithTableCapacity(meta.TABLE_CAPACITY)}

	if config.episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.episodes))
	}
	if config.duration > 0 {
		options = append(options, searcher.WithDuration(config.duration))
	}

	return searcher.NewMCTS(config.goroutines, options...)
}
