package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hexkeep/config"
	"hexkeep/experiments/metrics"
	"hexkeep/scenario"
)

// RunThroughput plays the configured match once per worker count and records how many games
// per second each pool size sustains.
func RunThroughput(cfg config.Config, s *scenario.Scenario, workerCounts []int) (string, error) {
	configs := agentConfigs(cfg)
	records := make([]metrics.ThroughputRecord, 0, len(workerCounts))

	for _, workers := range workerCounts {
		if workers <= 0 {
			return "", fmt.Errorf("worker count must be positive, got %d", workers)
		}
		log.Info().Msgf("starting throughput run with %d workers...", workers)

		start := time.Now()
		if _, err := playGames(cfg, s, configs, workers); err != nil {
			return "", err
		}
		record := metrics.ThroughputRecord{Workers: workers, Games: cfg.Match.Games, Duration: time.Since(start)}
		records = append(records, record)

		log.Info().Msgf("%d workers: %.2f games/s", workers, record.GamesPerSecond())
	}

	writer, err := metrics.NewWriter(cfg.OutputDir, "throughput")
	if err != nil {
		return "", err
	}
	if err := writer.WriteThroughput(records); err != nil {
		return "", fmt.Errorf("failed to store throughput records: %w", err)
	}
	return writer.Dir(), nil
}
