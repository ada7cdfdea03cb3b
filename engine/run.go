package engine

import (
	"time"

	"aigames/agent"
	"aigames/experiments/metrics"
	"aigames/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrTurnLimit = errors.New("turn limit reached")

// metered is implemented by strategies that record search metrics.
type metered interface {
	LastMetric() metrics.SearchMetric
}

// Run plays a full game with opponent in the human seat. The session is
// reset first. Search metrics are collected for every strategy move when the
// strategy records them.
func Run[M comparable](s *Session[M], opponent agent.Agent[M], maxTurns int) (metrics.GameMetric, []metrics.MoveMetric, error) {
	s.Reset()
	gameMetric := metrics.GameMetric{
		Strategy:  s.strategy.Name(),
		Opponent:  opponent.Name(),
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	for turn := 1; !s.status.Terminal(); turn++ {
		if turn > maxTurns {
			return finishMetric(gameMetric, s), moveMetrics, errors.Wrapf(ErrTurnLimit, "after %d turns", maxTurns)
		}

		move, err := opponent.Choose(s.game, game.Human)
		if err != nil {
			return finishMetric(gameMetric, s), moveMetrics, errors.Wrapf(err, "%s move", opponent.Name())
		}
		if _, err := s.Play(move); err != nil {
			return finishMetric(gameMetric, s), moveMetrics, err
		}

		if m, ok := s.strategy.(metered); ok && s.cpuMoved {
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         s.plies,
				Player:       game.Cpu.String(),
				SearchMetric: m.LastMetric(),
			})
		}
	}

	gameMetric = finishMetric(gameMetric, s)
	log.Info().
		Str("strategy", gameMetric.Strategy).
		Str("opponent", gameMetric.Opponent).
		Str("status", gameMetric.Status).
		Int("plies", gameMetric.Plies).
		Msgf("completed game in %s", gameMetric.Duration)
	return gameMetric, moveMetrics, nil
}

func finishMetric[M comparable](m metrics.GameMetric, s *Session[M]) metrics.GameMetric {
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.Status = s.status.String()
	m.Plies = s.plies
	return m
}
