package main

import (
	"fmt"
	"os"

	"mcts/engine"
	"mcts/experiments"
	"mcts/game"
	"mcts/policy"
	"mcts/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	configs := defaultConfigs()
	if len(os.Args) > 1 {
		loaded, err := experiments.LoadConfigs(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("loading experiment configs")
		}
		configs = loaded
	}

	writer, err := experiments.NewWriter("winrate")
	if err != nil {
		log.Fatal().Err(err).Msg("creating results writer")
	}

	for _, cfg := range configs {
		runExperiment(cfg, writer)
	}
}

func defaultConfigs() []experiments.Config {
	return []experiments.Config{
		{
			Variant:      "naive",
			Trials:       100,
			StepsPerMove: 100,
			Exploration:  searcher.DefaultExploration,
			Seed:         1,
		},
		{
			Variant:      "sarsa",
			Trials:       100,
			StepsPerMove: 100,
			Exploration:  searcher.DefaultExploration,
			Gamma:        searcher.DefaultGamma,
			TraceDecay:   searcher.DefaultTraceDecay,
			Seed:         1,
		},
	}
}

func runExperiment(cfg experiments.Config, writer *experiments.Writer) {
	fmt.Printf("Running %s experiment (%d trials, %d steps per move)...\n",
		cfg.Variant, cfg.Trials, cfg.StepsPerMove)

	var wins, losses, draws int
	var games []experiments.GameMetric
	for i := 0; i < cfg.Trials; i++ {
		winner, moves, gameMetric, err := runGame(cfg, cfg.Seed+uint64(i))
		if err != nil {
			log.Fatal().Err(err).Msgf("game %d failed", i+1)
		}
		switch winner {
		case game.X:
			wins++
		case game.O:
			losses++
		default:
			draws++
		}
		games = append(games, gameMetric)
		if err := writer.WriteMoves(gameMetric.ID.String(), moves); err != nil {
			log.Fatal().Err(err).Msg("writing move records")
		}
	}
	if err := writer.WriteGames(games); err != nil {
		log.Fatal().Err(err).Msg("writing game records")
	}

	fmt.Printf("AGENT WINS: %d/%d = %d%%\n", wins, cfg.Trials, wins*100/cfg.Trials)
	fmt.Printf("OPPONENT WINS: %d/%d = %d%%\n", losses, cfg.Trials, losses*100/cfg.Trials)
	fmt.Printf("DRAWS: %d/%d = %d%%\n", draws, cfg.Trials, draws*100/cfg.Trials)
}

// runGame plays one match: the agent marks X, a random opponent marks O and
// moves first.
func runGame(cfg experiments.Config, seed uint64) (game.Mark, []experiments.MoveMetric, experiments.GameMetric, error) {
	g := game.NewTicTacToe()
	playout := policy.NewRandom(g, seed)

	var agent engine.Searcher
	switch cfg.Variant {
	case "sarsa":
		agent = searcher.NewSarsa(g, game.X, game.O, playout,
			searcher.WithExploration(cfg.Exploration),
			searcher.WithAlpha(cfg.Alpha),
			searcher.WithGamma(cfg.Gamma),
			searcher.WithTraceDecay(cfg.TraceDecay),
			searcher.WithSeed(seed))
	default:
		agent = searcher.NewNaive(g, game.X, game.O, playout,
			searcher.WithExploration(cfg.Exploration),
			searcher.WithSeed(seed))
	}

	opponent := policy.NewRandom(g, seed+1)
	collector := experiments.NewCollector()
	collector.StartGame()

	local := engine.NewLocal(g, agent, game.X, game.O, opponent, cfg.StepsPerMove,
		engine.WithCollector(collector))
	winner, moves, err := local.Run()
	gameMetric := collector.CompleteGame(winner.String())
	return winner, moves, gameMetric, err
}
