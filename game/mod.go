package game

// Game is the contract every playable game exposes to the strategies and to
// the session that drives it. Implementations own their state exclusively and
// are not safe for concurrent use.
//
// The acting player is always passed explicitly; no query changes whose turn
// it is.
type Game[M comparable] interface {
	// Board returns a snapshot of the cells for display.
	Board() Board
	// Repr returns a canonical key for the current state, used by the
	// transposition cache and the matchbox policy table.
	Repr() string
	// AllowedMoves lists the legal moves for player in the current state.
	AllowedMoves(player Player) []M
	// Apply plays move for player. When record is true the move is pushed
	// onto the undo history.
	Apply(player Player, move M, record bool) error
	// CanWin reports whether player has a move that wins immediately. The
	// state is left unchanged.
	CanWin(player Player) (bool, error)
	// Undo reverts the most recent recorded move. No-op on empty history.
	Undo()
	// Score values the current state from player's perspective, with
	// decisive results scaled down the deeper they are found.
	Score(player Player, depth int) (float64, error)
	IsTerminal() bool
	IsWinner(player Player) bool
	// Reset restores the initial configuration and clears the history.
	Reset()
}

// Board is a display snapshot: one glyph per cell, rows top to bottom.
// An empty string marks an empty cell.
type Board [][]string

// Copy returns a deep copy of b.
func (b Board) Copy() Board {
	c := make(Board, len(b))
	for i, row := range b {
		c[i] = append([]string(nil), row...)
	}
	return c
}
