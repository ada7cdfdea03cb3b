package engine

import (
	"aigames/game"
	"aigames/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrSessionInProgress = errors.New("session in progress")

type Status int

const (
	InProgress Status = iota
	HumanWon
	CpuWon
	Draw
	CpuForfeited
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case HumanWon:
		return "human_won"
	case CpuWon:
		return "cpu_won"
	case Draw:
		return "draw"
	case CpuForfeited:
		return "cpu_forfeited"
	default:
		return "unknown"
	}
}

// Message is the text shown to the human for a finished game.
func (s Status) Message() string {
	switch s {
	case HumanWon:
		return "You win!"
	case CpuWon:
		return "AI wins"
	case Draw:
		return "Tie game"
	case CpuForfeited:
		return "AI forfeits!"
	default:
		return ""
	}
}

func (s Status) Terminal() bool {
	return s != InProgress
}

type Result struct {
	Board   game.Board
	Status  Status
	Message string
}

// Session drives one game between a human and a strategy. The human always
// moves first; every human move is answered by the strategy until the game
// ends. A Session is not safe for concurrent use.
type Session[M comparable] struct {
	game     game.Game[M]
	strategy searcher.Strategy[M]
	status   Status
	plies    int
	cpuMove  M
	cpuMoved bool
}

func NewSession[M comparable](g game.Game[M], s searcher.Strategy[M]) *Session[M] {
	if g == nil || s == nil {
		panic("session needs a game and a strategy")
	}
	s.NewGame()
	return &Session[M]{game: g, strategy: s}
}

func (s *Session[M]) Game() game.Game[M] {
	return s.game
}

func (s *Session[M]) Strategy() searcher.Strategy[M] {
	return s.strategy
}

func (s *Session[M]) Status() Status {
	return s.status
}

// Plies is the number of moves played by both sides since the last reset.
func (s *Session[M]) Plies() int {
	return s.plies
}

// LastCpuMove returns the strategy's reply to the most recent human move.
func (s *Session[M]) LastCpuMove() (M, bool) {
	return s.cpuMove, s.cpuMoved
}

func (s *Session[M]) Result() Result {
	return Result{
		Board:   s.game.Board(),
		Status:  s.status,
		Message: s.status.Message(),
	}
}

// Play applies the human's move and lets the strategy answer it. Input on a
// finished game is ignored. An illegal move is returned as an error and
// leaves the session unchanged; so is any strategy failure other than a
// forfeit.
func (s *Session[M]) Play(move M) (Result, error) {
	if s.status.Terminal() {
		return s.Result(), nil
	}
	var zero M
	s.cpuMove, s.cpuMoved = zero, false

	if err := s.game.Apply(game.Human, move, false); err != nil {
		return s.Result(), errors.Wrap(err, "human move")
	}
	s.plies++
	if s.game.IsWinner(game.Human) {
		return s.finish(HumanWon, game.Lose), nil
	}
	if s.game.IsTerminal() {
		return s.finish(Draw, game.Draw), nil
	}

	reply, err := s.strategy.BestMove(s.game)
	if errors.Is(err, game.ErrNoLegalMove) {
		return s.finish(CpuForfeited, game.Draw), nil
	}
	if err != nil {
		return s.Result(), errors.Wrapf(err, "%s move", s.strategy.Name())
	}
	if err := s.game.Apply(game.Cpu, reply, true); err != nil {
		return s.Result(), errors.Wrapf(err, "%s move", s.strategy.Name())
	}
	s.plies++
	s.cpuMove, s.cpuMoved = reply, true

	if s.game.IsWinner(game.Cpu) {
		return s.finish(CpuWon, game.Win), nil
	}
	if s.game.IsTerminal() {
		return s.finish(Draw, game.Draw), nil
	}
	return s.Result(), nil
}

func (s *Session[M]) finish(status Status, outcome game.Outcome) Result {
	s.status = status
	s.strategy.Update(outcome)
	log.Debug().
		Str("strategy", s.strategy.Name()).
		Str("status", status.String()).
		Int("plies", s.plies).
		Msg("game over")
	return s.Result()
}

// Reset starts a new game. Learned strategy state is kept; only the
// strategy's record of the previous game is dropped.
func (s *Session[M]) Reset() game.Board {
	var zero M
	s.game.Reset()
	s.strategy.NewGame()
	s.status = InProgress
	s.plies = 0
	s.cpuMove, s.cpuMoved = zero, false
	return s.game.Board()
}

// SetStrategy swaps the strategy between games. It fails while a game is
// under way.
func (s *Session[M]) SetStrategy(strategy searcher.Strategy[M]) error {
	if strategy == nil {
		return errors.New("nil strategy")
	}
	if !s.status.Terminal() && s.plies > 0 {
		return ErrSessionInProgress
	}
	strategy.NewGame()
	s.strategy = strategy
	return nil
}
