package experiments

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"hexkeep/agent"
	"hexkeep/config"
	"hexkeep/engine"
	"hexkeep/experiments/metrics"
	"hexkeep/game"
	"hexkeep/scenario"
)

// Run plays cfg.Match.Games self-play games of s and stores the results. It returns the
// directory the records were written to.
func Run(cfg config.Config, s *scenario.Scenario) (string, error) {
	configs := agentConfigs(cfg)

	log.Info().Msgf("starting %d games of %q between %s and %s...",
		cfg.Match.Games, s.Name, configs[0].Kind, configs[1].Kind)

	records, err := playGames(cfg, s, configs, cfg.Match.Workers)
	if err != nil {
		return "", err
	}

	wins := map[string]int{}
	for _, r := range records {
		wins[r.Winner]++
	}
	log.Info().Msgf("completed %d games: Faction1 %d, Faction2 %d, draws %d",
		len(records), wins[game.Faction1.String()], wins[game.Faction2.String()], wins[""])

	writer, err := metrics.NewWriter(cfg.OutputDir, "selfplay")
	if err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(records); err != nil {
		return "", fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msgf("stored game records in %s", writer.Dir())
	return writer.Dir(), nil
}

func agentConfigs(cfg config.Config) []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, len(cfg.Match.Agents))
	for i, kind := range cfg.Match.Agents {
		configs[i] = metrics.AgentConfig{ID: i + 1, Kind: kind, Seed: cfg.Match.Seed + uint64(i)}
	}
	return configs
}

// playGames spreads the games over a pool of workers. Each game owns its state, so the only
// shared value is the records slice, written at distinct indexes.
func playGames(cfg config.Config, s *scenario.Scenario, configs []metrics.AgentConfig, workers int) ([]metrics.GameRecord, error) {
	records := make([]metrics.GameRecord, cfg.Match.Games)
	jobs := make(chan int)
	errs := make(chan error, cfg.Match.Games)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				record, err := runGame(cfg, s, configs, i)
				if err != nil {
					errs <- err
					continue
				}
				records[i] = record
			}
		}()
	}
	for i := 0; i < cfg.Match.Games; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)

	if err, ok := <-errs; ok {
		return nil, err
	}
	return records, nil
}

// runGame executes a single game between the configured agents
func runGame(cfg config.Config, s *scenario.Scenario, configs []metrics.AgentConfig, i int) (metrics.GameRecord, error) {
	gs := game.NewGameState(cfg.Rules, game.WithDecider(game.Factions...))
	if err := scenario.Apply(gs, s); err != nil {
		return metrics.GameRecord{}, fmt.Errorf("game %d: %w", i+1, err)
	}

	agents := make(map[game.Faction]agent.Agent, len(game.Factions))
	for j, f := range game.Factions {
		// every game gets its own seeds so random agents do not replay the same game
		seed := configs[j].Seed + uint64(i*len(configs))
		a, err := agent.New(configs[j].Kind, seed)
		if err != nil {
			return metrics.GameRecord{}, fmt.Errorf("game %d: %w", i+1, err)
		}
		agents[f] = a
	}

	e := engine.NewLocal(gs, agents, engine.WithMaxRounds(cfg.Match.MaxRounds))
	winner, gameMetric := e.Run()
	log.Info().Msgf("completed game %d of %d with winner: %s", i+1, cfg.Match.Games, winner)

	return metrics.GameRecord{
		ID:         i + 1,
		Agent1:     configs[0].ID,
		Agent2:     configs[1].ID,
		GameMetric: gameMetric,
	}, nil
}
