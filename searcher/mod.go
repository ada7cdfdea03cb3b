package searcher

import (
	"time"

	"aigames/game"

	"golang.org/x/exp/rand"
)

// Strategy picks moves for one side of a game and may learn from outcomes.
type Strategy[M comparable] interface {
	// BestMove returns the move to play in the current state of g.
	// game.ErrNoLegalMove means the strategy forfeits.
	BestMove(g game.Game[M]) (M, error)
	// Update reports the outcome of the game just played.
	Update(outcome game.Outcome)
	// NewGame marks the start of a new game. Learned state is kept.
	NewGame()
	Name() string
}

const (
	DefaultMaxScore      = 1000.0
	DefaultDefaultWeight = 3.0
	DefaultFloor         = 0.01
)

type Option func(o *options)

type options struct {
	player        game.Player
	maxScore      float64
	threatCutoff  bool
	metrics       bool
	defaultWeight float64
	floor         float64
	rng           *rand.Rand
}

func defaultOptions() options {
	return options{
		player:        game.Cpu,
		maxScore:      DefaultMaxScore,
		threatCutoff:  true,
		defaultWeight: DefaultDefaultWeight,
		floor:         DefaultFloor,
	}
}

// WithPlayer sets the side the strategy moves for. Defaults to game.Cpu.
func WithPlayer(player game.Player) Option {
	return func(o *options) {
		if player == game.Human || player == game.Cpu {
			o.player = player
		}
	}
}

// WithMaxScore bounds the search window and is the value given to a move
// that hands the opponent an immediate win.
func WithMaxScore(maxScore float64) Option {
	return func(o *options) {
		if maxScore > 0 {
			o.maxScore = maxScore
		}
	}
}

func WithThreatCutoff(enabled bool) Option {
	return func(o *options) {
		o.threatCutoff = enabled
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = true
	}
}

// WithDefaultWeight sets the weight seeded for moves in newly seen states.
func WithDefaultWeight(weight float64) Option {
	return func(o *options) {
		if weight > 0 {
			o.defaultWeight = weight
		}
	}
}

// WithFloor sets the lowest weight a move can be driven to.
func WithFloor(floor float64) Option {
	return func(o *options) {
		if floor > 0 {
			o.floor = floor
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, option := range opts {
		option(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return o
}
