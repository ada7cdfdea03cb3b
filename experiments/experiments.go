package experiments

import (
	"context"
	"runtime"

	"aigames/agent"
	"aigames/chessgame"
	"aigames/config"
	"aigames/engine"
	"aigames/experiments/metrics"
	"aigames/game"
	"aigames/tictactoe"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// TurnLimitStatus marks a game stopped by the turn cap.
const TurnLimitStatus = "turn_limit"

// Matchup pits one strategy against one opponent for a number of games.
type Matchup struct {
	ID       int
	Strategy config.Strategy
	Opponent string
	Games    int
}

func (m Matchup) config(gameKind string) metrics.MatchupConfig {
	return metrics.MatchupConfig{
		ID:       m.ID,
		Game:     gameKind,
		Strategy: m.Strategy.Kind,
		Depth:    m.Strategy.Search.Depth,
		Threat:   m.Strategy.Search.ThreatCutoff,
		Opponent: m.Opponent,
		Games:    m.Games,
	}
}

type Results struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// DefaultMatchups compares the configured strategy with its variants: the
// search without threat cutoffs and the matchbox policy.
func DefaultMatchups(cfg config.Config) []Matchup {
	base := cfg.Strategy
	base.Search.Metrics = true

	noThreat := base
	noThreat.Kind = config.Negamax
	noThreat.Search.ThreatCutoff = !base.Search.ThreatCutoff

	matchbox := base
	matchbox.Kind = config.Matchbox

	games := cfg.Experiment.Games
	opponent := cfg.Experiment.Opponent
	return []Matchup{
		{ID: 1, Strategy: base, Opponent: opponent, Games: games},
		{ID: 2, Strategy: noThreat, Opponent: opponent, Games: games},
		{ID: 3, Strategy: matchbox, Opponent: opponent, Games: games},
	}
}

// Run plays every matchup, in parallel across matchups, and writes the
// results under cfg.Experiment.OutDir. It returns the output directory.
func Run(ctx context.Context, name string, cfg config.Config, matchUps []Matchup) (string, error) {
	log.Info().Msgf("starting %s experiment...", name)

	var results Results
	var err error
	switch cfg.Game {
	case config.TicTacToe:
		results, err = play(ctx, cfg, matchUps, func() game.Game[tictactoe.Move] {
			return tictactoe.New()
		})
	case config.Chess:
		results, err = play(ctx, cfg, matchUps, func() game.Game[string] {
			return chessgame.FromConfig(cfg.Chess)
		})
	default:
		err = errors.Wrapf(config.ErrInvalid, "unknown game %q", cfg.Game)
	}
	if err != nil {
		return "", err
	}
	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.Experiment.OutDir, name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}
	configs := make([]metrics.MatchupConfig, len(matchUps))
	for i, m := range matchUps {
		configs[i] = m.config(cfg.Game)
	}
	if err := writer.WriteMatchups(configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(results.Games); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer.Dir(), nil
}

// play runs the matchups concurrently. Each matchup owns its game and
// strategy, so no state is shared between goroutines.
func play[M comparable](ctx context.Context, cfg config.Config, matchUps []Matchup, newGame func() game.Game[M]) (Results, error) {
	perMatchup := make([]Results, len(matchUps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, m := range matchUps {
		g.Go(func() error {
			r, err := runMatchup(ctx, cfg, m, newGame)
			perMatchup[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Results{}, err
	}

	// Number games in matchup order so output does not depend on scheduling.
	var all Results
	for _, r := range perMatchup {
		offset := len(all.Games)
		for _, gr := range r.Games {
			gr.ID += offset
			all.Games = append(all.Games, gr)
		}
		for _, mr := range r.Moves {
			mr.Game += offset
			all.Moves = append(all.Moves, mr)
		}
	}
	return all, nil
}

func runMatchup[M comparable](ctx context.Context, cfg config.Config, m Matchup, newGame func() game.Game[M]) (Results, error) {
	strategy, err := engine.NewStrategy[M](m.Strategy)
	if err != nil {
		return Results{}, errors.Wrapf(err, "matchup %d", m.ID)
	}
	seed := cfg.Experiment.Seed
	if seed != 0 {
		seed += uint64(m.ID)
	}
	opponent, err := agent.New[M](m.Opponent, seed)
	if err != nil {
		return Results{}, errors.Wrapf(err, "matchup %d", m.ID)
	}
	session := engine.NewSession(newGame(), strategy)

	log.Info().Msgf("starting matchup %d between %s and %s...", m.ID, strategy.Name(), opponent.Name())
	var results Results
	for i := 1; i <= m.Games; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		gameMetric, moveMetrics, err := engine.Run(session, opponent, cfg.Experiment.MaxTurns)
		switch {
		case errors.Is(err, engine.ErrTurnLimit):
			gameMetric.Status = TurnLimitStatus
		case err != nil:
			return results, errors.Wrapf(err, "matchup %d game %d", m.ID, i)
		}

		results.Games = append(results.Games, metrics.GameRecord{ID: i, Matchup: m.ID, GameMetric: gameMetric})
		for _, mm := range moveMetrics {
			results.Moves = append(results.Moves, metrics.MoveRecord{Game: i, MoveMetric: mm})
		}
	}
	log.Info().Msgf("completed matchup %d", m.ID)
	return results, nil
}
