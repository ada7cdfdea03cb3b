package agent

import (
	"time"

	"aigames/config"
	"aigames/game"
	"aigames/searcher"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Agent picks moves for whichever side it is asked to play. Agents stand in
// for the human seat in self-play and experiments.
type Agent[M comparable] interface {
	// Choose returns a move for player in the current state of g, or
	// game.ErrNoLegalMove when player has none.
	Choose(g game.Game[M], player game.Player) (M, error)
	Name() string
}

// New returns the opponent named by kind, one of the config opponent kinds.
func New[M comparable](kind string, seed uint64) (Agent[M], error) {
	switch kind {
	case config.First:
		return First[M]{}, nil
	case config.Random:
		return NewRandom[M](seed), nil
	case config.Greedy:
		return NewGreedy[M](seed), nil
	default:
		return nil, errors.Wrapf(config.ErrInvalid, "unknown opponent %q", kind)
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// First always plays the first allowed move.
type First[M comparable] struct{}

func (First[M]) Name() string { return "first" }

func (First[M]) Choose(g game.Game[M], player game.Player) (M, error) {
	var zero M
	moves := g.AllowedMoves(player)
	if len(moves) == 0 {
		return zero, game.ErrNoLegalMove
	}
	return moves[0], nil
}

// Random plays a uniformly random allowed move.
type Random[M comparable] struct {
	rng *rand.Rand
}

// NewRandom returns a Random agent. A zero seed seeds from the clock.
func NewRandom[M comparable](seed uint64) *Random[M] {
	return &Random[M]{rng: newRand(seed)}
}

func (a *Random[M]) Name() string { return "random" }

func (a *Random[M]) Choose(g game.Game[M], player game.Player) (M, error) {
	var zero M
	moves := g.AllowedMoves(player)
	if len(moves) == 0 {
		return zero, game.ErrNoLegalMove
	}
	return moves[a.rng.Intn(len(moves))], nil
}

// Greedy takes an immediate win, then blocks the opponent's immediate win,
// then plays randomly.
type Greedy[M comparable] struct {
	rng *rand.Rand
}

func NewGreedy[M comparable](seed uint64) *Greedy[M] {
	return &Greedy[M]{rng: newRand(seed)}
}

func (a *Greedy[M]) Name() string { return "greedy" }

func (a *Greedy[M]) Choose(g game.Game[M], player game.Player) (M, error) {
	var zero M
	moves := g.AllowedMoves(player)
	if len(moves) == 0 {
		return zero, game.ErrNoLegalMove
	}

	move, ok, err := findImmediate(g, player, moves)
	if err != nil || ok {
		return move, err
	}
	// A cell the opponent would win on is also a cell we can take.
	move, ok, err = findImmediate(g, player.Opposing(), g.AllowedMoves(player.Opposing()))
	if err != nil {
		return zero, err
	}
	if ok && contains(moves, move) {
		return move, nil
	}
	return moves[a.rng.Intn(len(moves))], nil
}

func findImmediate[M comparable](g game.Game[M], player game.Player, moves []M) (M, bool, error) {
	var zero M
	for _, m := range moves {
		if err := g.Apply(player, m, true); err != nil {
			return zero, false, errors.Wrapf(err, "probe %v", m)
		}
		won := g.IsWinner(player)
		g.Undo()
		if won {
			return m, true, nil
		}
	}
	return zero, false, nil
}

func contains[M comparable](moves []M, move M) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}

// Strategy lets a searcher.Strategy sit in a seat. The strategy must have
// been built for the player it is asked to move for.
type Strategy[M comparable] struct {
	strategy searcher.Strategy[M]
}

func NewStrategy[M comparable](s searcher.Strategy[M]) *Strategy[M] {
	return &Strategy[M]{strategy: s}
}

func (a *Strategy[M]) Name() string { return a.strategy.Name() }

func (a *Strategy[M]) Choose(g game.Game[M], _ game.Player) (M, error) {
	return a.strategy.BestMove(g)
}
