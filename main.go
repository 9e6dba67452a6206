package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hexkeep/config"
	"hexkeep/experiments"
	"hexkeep/scenario"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	scenarioPath := flag.String("scenario", "", "YAML scenario file (defaults to the built-in skirmish)")
	games := flag.Int("games", 0, "Number of self-play games")
	seed := flag.Uint64("seed", 0, "Seed for randomized agents")
	out := flag.String("out", "", "Directory for result records")
	maxRounds := flag.Int("max-rounds", 0, "Rounds before a game is called a draw")
	workers := flag.Int("workers", 0, "Games played concurrently")
	throughput := flag.String("throughput", "", "Comma-separated worker counts for a throughput run, e.g. 1,2,4")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load config")
		}
	}
	if *games > 0 {
		cfg.Match.Games = *games
	}
	if *seed > 0 {
		cfg.Match.Seed = *seed
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	if *maxRounds > 0 {
		cfg.Match.MaxRounds = *maxRounds
	}
	if *workers > 0 {
		cfg.Match.Workers = *workers
	}
	if *scenarioPath != "" {
		cfg.Scenario = *scenarioPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	s := scenario.Standard()
	if cfg.Scenario != "" {
		var err error
		s, err = scenario.Load(cfg.Scenario)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load scenario")
		}
	}

	if *throughput != "" {
		counts, err := parseCounts(*throughput)
		if err != nil {
			log.Fatal().Err(err).Msg("bad -throughput")
		}
		if _, err := experiments.RunThroughput(cfg, s, counts); err != nil {
			log.Fatal().Err(err).Msg("throughput run failed")
		}
		return
	}

	if _, err := experiments.Run(cfg, s); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}

func parseCounts(list string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return counts, nil
}
