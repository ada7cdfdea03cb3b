package server

import (
	"aigames/chessgame"
	"aigames/config"
	"aigames/engine"
	"aigames/game"
	"aigames/tictactoe"

	"github.com/pkg/errors"
)

// match hides the move type of a session behind text moves so sessions of
// different games can share one registry.
type match interface {
	Game() string
	Strategy() string
	Play(move string) (engine.Result, error)
	LastCpuMove() string
	Moves() []string
	Result() engine.Result
	Reset() game.Board
	SetStrategy(cfg config.Strategy) error
}

type typedMatch[M comparable] struct {
	game    string
	session *engine.Session[M]
	parse   func(string) (M, error)
	format  func(M) string
}

func newMatch(kind string, strategy config.Strategy, chessCfg config.ChessGame) (match, error) {
	switch kind {
	case config.TicTacToe:
		return newTypedMatch[tictactoe.Move](kind, tictactoe.New(), strategy, tictactoe.ParseMove, tictactoe.Move.String)
	case config.Chess:
		return newTypedMatch[string](kind, chessgame.FromConfig(chessCfg), strategy, chessgame.ParseMove, func(m string) string { return m })
	default:
		return nil, errors.Wrapf(config.ErrInvalid, "unknown game %q", kind)
	}
}

func newTypedMatch[M comparable](kind string, g game.Game[M], cfg config.Strategy, parse func(string) (M, error), format func(M) string) (match, error) {
	strategy, err := engine.NewStrategy[M](cfg)
	if err != nil {
		return nil, err
	}
	return &typedMatch[M]{
		game:    kind,
		session: engine.NewSession(g, strategy),
		parse:   parse,
		format:  format,
	}, nil
}

func (m *typedMatch[M]) Game() string {
	return m.game
}

func (m *typedMatch[M]) Strategy() string {
	return m.session.Strategy().Name()
}

func (m *typedMatch[M]) Play(text string) (engine.Result, error) {
	move, err := m.parse(text)
	if err != nil {
		return m.session.Result(), err
	}
	return m.session.Play(move)
}

func (m *typedMatch[M]) LastCpuMove() string {
	move, ok := m.session.LastCpuMove()
	if !ok {
		return ""
	}
	return m.format(move)
}

func (m *typedMatch[M]) Moves() []string {
	if m.session.Status().Terminal() {
		return []string{}
	}
	allowed := m.session.Game().AllowedMoves(game.Human)
	moves := make([]string, len(allowed))
	for i, move := range allowed {
		moves[i] = m.format(move)
	}
	return moves
}

func (m *typedMatch[M]) Result() engine.Result {
	return m.session.Result()
}

func (m *typedMatch[M]) Reset() game.Board {
	return m.session.Reset()
}

func (m *typedMatch[M]) SetStrategy(cfg config.Strategy) error {
	strategy, err := engine.NewStrategy[M](cfg)
	if err != nil {
		return err
	}
	return m.session.SetStrategy(strategy)
}
