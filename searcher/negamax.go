package searcher

import (
	"aigames/experiments/metrics"
	"aigames/game"

	"github.com/rs/zerolog/log"
)

// Candidate is a root move and the value the search gave it. Conceded marks
// a move that leaves the opponent an immediate win.
type Candidate[M comparable] struct {
	Move     M
	Value    float64
	Conceded bool
}

// Negamax is a depth-bounded negamax search with alpha-beta pruning. Root
// results are cached by state representation for the lifetime of the
// instance.
type Negamax[M comparable] struct {
	player       game.Player
	maxDepth     int
	maxScore     float64
	threatCutoff bool
	cache        map[string][]Candidate[M]
	metrics      metrics.Collector
	last         metrics.SearchMetric
}

var _ Strategy[int] = (*Negamax[int])(nil)

func NewNegamax[M comparable](maxDepth int, opts ...Option) *Negamax[M] {
	if maxDepth <= 0 {
		panic("search depth must be positive")
	}
	o := newOptions(opts)
	n := &Negamax[M]{
		player:       o.player,
		maxDepth:     maxDepth,
		maxScore:     o.maxScore,
		threatCutoff: o.threatCutoff,
		cache:        make(map[string][]Candidate[M]),
		metrics:      metrics.NewDummyCollector(),
	}
	if o.metrics {
		n.metrics = metrics.NewCollector()
	}
	return n
}

func (n *Negamax[M]) Name() string {
	return "negamax"
}

// BestMove returns the highest valued root move, the first one on ties. It
// forfeits when there is no move, or when every move concedes an immediate
// win.
func (n *Negamax[M]) BestMove(g game.Game[M]) (M, error) {
	var zero M

	n.metrics.Start(n.maxDepth)
	key := g.Repr()
	candidates, ok := n.cache[key]
	n.metrics.SetCacheHit(ok)
	if !ok {
		var err error
		candidates, err = n.search(g)
		if err != nil {
			n.last = n.metrics.Complete()
			return zero, err
		}
		n.cache[key] = candidates
	}
	n.last = n.metrics.Complete()

	best, found := pick(candidates)
	log.Debug().
		Str("repr", key).
		Int("candidates", len(candidates)).
		Float64("value", best.Value).
		Bool("cache_hit", ok).
		Int("nodes", n.last.Nodes).
		Msg("negamax search complete")

	if !found {
		return zero, game.ErrNoLegalMove
	}
	return best.Move, nil
}

// Update is a no-op: the search learns nothing from outcomes.
func (n *Negamax[M]) Update(game.Outcome) {}

// NewGame keeps the cache; entries stay valid across games.
func (n *Negamax[M]) NewGame() {}

// LastMetric describes the most recent BestMove call. Zero unless the
// strategy was built WithMetrics.
func (n *Negamax[M]) LastMetric() metrics.SearchMetric {
	return n.last
}

// Candidates returns the cached root list for repr, if any.
func (n *Negamax[M]) Candidates(repr string) ([]Candidate[M], bool) {
	c, ok := n.cache[repr]
	return append([]Candidate[M](nil), c...), ok
}

// search values every root move. The root keeps raising alpha with moves that
// do not concede, so such a move that cannot beat the best so far comes back
// bounded at or below it and never wins the tie-break.
func (n *Negamax[M]) search(g game.Game[M]) ([]Candidate[M], error) {
	n.metrics.AddNode()
	moves := g.AllowedMoves(n.player)
	candidates := make([]Candidate[M], 0, len(moves))
	alpha, beta := -n.maxScore, n.maxScore
	for _, move := range moves {
		value, conceded, err := n.child(g, n.player, move, 1, alpha, beta)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate[M]{Move: move, Value: value, Conceded: conceded})
		if !conceded && value > alpha {
			alpha = value
		}
	}
	return candidates, nil
}

// negamax values the state from player's perspective, player to move.
func (n *Negamax[M]) negamax(g game.Game[M], player game.Player, depth int, alpha, beta float64) (float64, error) {
	n.metrics.AddNode()
	if depth > n.maxDepth || g.IsTerminal() {
		return g.Score(player, depth)
	}

	moves := g.AllowedMoves(player)
	if len(moves) == 0 {
		return g.Score(player, depth)
	}
	for _, move := range moves {
		value, _, err := n.child(g, player, move, depth+1, alpha, beta)
		if err != nil {
			return 0, err
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			n.metrics.AddCutoff()
			break
		}
	}
	return alpha, nil
}

// child plays move for player, values the resulting state for player and
// takes the move back. A move that leaves the opponent an immediate win is
// valued as that loss one ply deeper, -maxScore/(depth+1), without further
// search, and reported as conceded.
func (n *Negamax[M]) child(g game.Game[M], player game.Player, move M, depth int, alpha, beta float64) (float64, bool, error) {
	if err := g.Apply(player, move, true); err != nil {
		return 0, false, err
	}
	defer g.Undo()

	opponent := player.Opposing()
	if n.threatCutoff && !g.IsTerminal() {
		threat, err := g.CanWin(opponent)
		if err != nil {
			return 0, false, err
		}
		if threat {
			n.metrics.AddThreatCutoff()
			return -n.maxScore / float64(depth+1), true, nil
		}
	}

	value, err := n.negamax(g, opponent, depth, -beta, -alpha)
	if err != nil {
		return 0, false, err
	}
	return -value, false, nil
}

// pick returns the first highest valued candidate that does not concede.
func pick[M comparable](candidates []Candidate[M]) (Candidate[M], bool) {
	var best Candidate[M]
	found := false
	for _, c := range candidates {
		if c.Conceded {
			continue
		}
		if !found || c.Value > best.Value {
			best, found = c, true
		}
	}
	return best, found
}
