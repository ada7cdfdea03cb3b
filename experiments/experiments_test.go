package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"aigames/config"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Strategy.Search.Depth = 4
	cfg.Experiment.Games = 3
	cfg.Experiment.Seed = 7
	cfg.Experiment.OutDir = t.TempDir()
	return cfg
}

func rows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return r
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}

func TestDefaultMatchups(t *testing.T) {
	cfg := config.Default()
	matchUps := DefaultMatchups(cfg)
	require.Len(t, matchUps, 3)
	require.True(t, matchUps[0].Strategy.Search.ThreatCutoff)
	require.False(t, matchUps[1].Strategy.Search.ThreatCutoff)
	require.Equal(t, config.Matchbox, matchUps[2].Strategy.Kind)
	for _, m := range matchUps {
		require.NoError(t, m.Strategy.Validate())
		require.Equal(t, cfg.Experiment.Games, m.Games)
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	dir, err := Run(context.Background(), "variants", cfg, DefaultMatchups(cfg))
	require.NoError(t, err)

	matchups := rows(t, filepath.Join(dir, "matchups.csv"))
	require.Len(t, matchups, 4)

	games := rows(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 1+9)
	for i, row := range games[1:] {
		require.Equal(t, i+1, mustAtoi(t, row[0]), "Games should be numbered in matchup order")
		require.NotEqual(t, "in_progress", row[4])
	}

	moves := rows(t, filepath.Join(dir, "move_records.csv"))
	require.Greater(t, len(moves), 1, "Search matchups should record move metrics")
}

func TestRunTurnLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Experiment.MaxTurns = 1
	dir, err := Run(context.Background(), "capped", cfg, DefaultMatchups(cfg)[:1])
	require.NoError(t, err)

	games := rows(t, filepath.Join(dir, "game_records.csv"))
	for _, row := range games[1:] {
		require.Equal(t, TurnLimitStatus, row[4])
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, "cancelled", cfg, DefaultMatchups(cfg))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunChess(t *testing.T) {
	cfg := testConfig(t)
	cfg.Game = config.Chess
	cfg.Strategy.Search.Depth = 1
	cfg.Experiment.Games = 1
	cfg.Experiment.MaxTurns = 1
	matchUps := DefaultMatchups(cfg)[:1]

	dir, err := Run(context.Background(), "chess", cfg, matchUps)
	require.NoError(t, err)
	games := rows(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, TurnLimitStatus, games[1][4])
}
