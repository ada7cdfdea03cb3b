package game

import "github.com/pkg/errors"

var (
	// ErrNoLegalMove is returned by a strategy that has nothing to play. The
	// session treats it as a forfeit, never as a failure.
	ErrNoLegalMove = errors.New("no legal move")

	// ErrUnimplementedRule marks a rule a game adapter does not provide.
	ErrUnimplementedRule = errors.New("rule not implemented")

	// ErrIllegalMove is returned when a move cannot be applied to the
	// current state. The state is left untouched.
	ErrIllegalMove = errors.New("illegal move")
)
