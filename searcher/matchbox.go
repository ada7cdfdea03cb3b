package searcher

import (
	"aigames/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Bead is a move and its weight in a matchbox.
type Bead[M comparable] struct {
	Move   M
	Weight float64
}

// Visit records a decision made during the current game.
type Visit struct {
	Repr  string
	Index int
}

// Matchbox keeps one box of weighted moves per state it has played from and
// samples moves in proportion to their weights. Finished games reinforce or
// penalise every decision taken during them.
type Matchbox[M comparable] struct {
	player        game.Player
	defaultWeight float64
	floor         float64
	rng           *rand.Rand
	boxes         map[string][]Bead[M]
	history       []Visit // most recent first
}

var _ Strategy[int] = (*Matchbox[int])(nil)

func NewMatchbox[M comparable](opts ...Option) *Matchbox[M] {
	o := newOptions(opts)
	if o.floor > o.defaultWeight {
		panic("matchbox floor must not exceed the default weight")
	}
	return &Matchbox[M]{
		player:        o.player,
		defaultWeight: o.defaultWeight,
		floor:         o.floor,
		rng:           o.rng,
		boxes:         make(map[string][]Bead[M]),
	}
}

func (mb *Matchbox[M]) Name() string {
	return "matchbox"
}

func (mb *Matchbox[M]) BestMove(g game.Game[M]) (M, error) {
	var zero M

	key := g.Repr()
	box, ok := mb.boxes[key]
	if !ok {
		moves := g.AllowedMoves(mb.player)
		box = make([]Bead[M], len(moves))
		for i, move := range moves {
			box[i] = Bead[M]{Move: move, Weight: mb.defaultWeight}
		}
		mb.boxes[key] = box
	}
	if len(box) == 0 {
		return zero, game.ErrNoLegalMove
	}

	weights := make([]float64, len(box))
	for i, bead := range box {
		weights[i] = bead.Weight
	}
	i, err := sample(mb.rng, weights)
	if err != nil {
		return zero, errors.Wrapf(err, "state %q", key)
	}

	mb.history = append([]Visit{{Repr: key, Index: i}}, mb.history...)
	return box[i].Move, nil
}

// Update adds the outcome's delta to every move played this game, never
// letting a weight fall below the floor.
func (mb *Matchbox[M]) Update(outcome game.Outcome) {
	delta := beadDelta(outcome)
	for _, v := range mb.history {
		bead := &mb.boxes[v.Repr][v.Index]
		bead.Weight = max(bead.Weight+delta, mb.floor)
	}
	log.Debug().
		Str("outcome", outcome.String()).
		Int("moves", len(mb.history)).
		Int("boxes", len(mb.boxes)).
		Msg("matchbox updated")
}

// NewGame forgets the previous game's decisions. Weights are kept.
func (mb *Matchbox[M]) NewGame() {
	mb.history = nil
}

// Box returns a copy of the beads stored for repr.
func (mb *Matchbox[M]) Box(repr string) ([]Bead[M], bool) {
	box, ok := mb.boxes[repr]
	return append([]Bead[M](nil), box...), ok
}

// History returns the decisions of the current game, most recent first.
func (mb *Matchbox[M]) History() []Visit {
	return append([]Visit(nil), mb.history...)
}

// Boxes is the number of states seen so far.
func (mb *Matchbox[M]) Boxes() int {
	return len(mb.boxes)
}
