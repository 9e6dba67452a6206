package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig identifies an agent taking part in an experiment.
type AgentConfig struct {
	ID   int
	Kind string
	Seed uint64
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing Faction1
	Agent2 int // AgentConfig.ID playing Faction2
	GameMetric
}

// ThroughputRecord is one worker-count measurement.
type ThroughputRecord struct {
	Workers  int
	Games    int
	Duration time.Duration
}

func (r ThroughputRecord) GamesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Games) / r.Duration.Seconds()
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped result directory under root.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.write("agents.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{
		"id", "agent1", "agent2", "winner", "reason", "rounds",
		"castle_damage1", "castle_damage2", "losses1", "losses2",
		"actions", "targets", "decisions", "start_time", "end_time", "duration",
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.Winner,
			record.Reason,
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.CastleDamage1),
			strconv.Itoa(record.CastleDamage2),
			strconv.Itoa(record.Losses1),
			strconv.Itoa(record.Losses2),
			strconv.Itoa(record.Actions),
			strconv.Itoa(record.Targets),
			strconv.Itoa(record.Decisions),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("games.csv", header, rows)
}

func (w *Writer) WriteThroughput(records []ThroughputRecord) error {
	header := []string{"workers", "games", "duration", "games_per_second"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Workers),
			strconv.Itoa(record.Games),
			record.Duration.String(),
			strconv.FormatFloat(record.GamesPerSecond(), 'f', 2, 64),
		})
	}
	return w.write("throughput.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
