package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MatchupConfig describes one strategy/opponent pairing of an experiment.
type MatchupConfig struct {
	ID       int
	Game     string
	Strategy string
	Depth    int
	Threat   bool
	Opponent string
	Games    int
}

type GameRecord struct {
	ID      int
	Matchup int // MatchupConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every file there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := strings.ReplaceAll(time.Now().UTC().Format(time.RFC3339Nano), ":", "-")
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", file)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "failed to write %s header", file)
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "failed to write %s rows", file)
	}
	return nil
}

func (w *Writer) WriteMatchups(configs []MatchupConfig) error {
	header := []string{"id", "game", "strategy", "depth", "threat_cutoff", "opponent", "games"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Game,
			c.Strategy,
			strconv.Itoa(c.Depth),
			strconv.FormatBool(c.Threat),
			c.Opponent,
			strconv.Itoa(c.Games),
		})
	}
	return w.write("matchups.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "matchup", "strategy", "opponent", "status", "plies", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Matchup),
			r.Strategy,
			r.Opponent,
			r.Status,
			strconv.Itoa(r.Plies),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "max_depth", "duration", "nodes", "cutoffs", "threat_cutoffs", "cache_hit"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			r.Player,
			strconv.Itoa(r.MaxDepth),
			r.Duration.String(),
			strconv.Itoa(r.Nodes),
			strconv.Itoa(r.Cutoffs),
			strconv.Itoa(r.ThreatCutoffs),
			strconv.FormatBool(r.CacheHit),
		})
	}
	return w.write("move_records.csv", header, rows)
}
