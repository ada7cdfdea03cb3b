// Package tictactoe implements noughts and crosses on a 3x3 grid. It is the
// smallest complete implementation of game.Game and the default test game.
package tictactoe

import (
	"fmt"
	"strconv"
	"strings"

	"aigames/game"

	"github.com/pkg/errors"
)

const Size = 3

// WinScore is the magnitude of a decisive result found at depth 1.
const WinScore = 1000.0

// Move is a cell coordinate.
type Move struct {
	Row int
	Col int
}

func (m Move) String() string {
	return fmt.Sprintf("%d,%d", m.Row, m.Col)
}

// ParseMove reads a move written as "row,col".
func ParseMove(s string) (Move, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Move{}, errors.Wrapf(game.ErrIllegalMove, "malformed cell %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Move{}, errors.Wrapf(game.ErrIllegalMove, "malformed row in %q", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Move{}, errors.Wrapf(game.ErrIllegalMove, "malformed column in %q", s)
	}
	return Move{Row: row, Col: col}, nil
}

// lines are the eight triples that win the game.
var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Game holds the grid. Cells store the owning player's sign, 0 when empty.
type Game struct {
	cells   [Size][Size]game.Player
	history []Move // most recent last
}

var _ game.Game[Move] = (*Game)(nil)

func New() *Game {
	return &Game{}
}

// FromRepr builds a game from a representation string, '.' or ' ' for an
// empty cell. Used to set up positions in tests and tools.
func FromRepr(repr string) (*Game, error) {
	if len(repr) != Size*Size {
		return nil, errors.Errorf("representation %q must have %d cells", repr, Size*Size)
	}
	g := New()
	for i, ch := range repr {
		r, c := i/Size, i%Size
		switch ch {
		case 'X', 'x':
			g.cells[r][c] = game.Human
		case 'O', 'o':
			g.cells[r][c] = game.Cpu
		case '.', ' ':
		default:
			return nil, errors.Errorf("unexpected cell %q in representation %q", ch, repr)
		}
	}
	return g, nil
}

func (g *Game) Board() game.Board {
	b := make(game.Board, Size)
	for r := range g.cells {
		b[r] = make([]string, Size)
		for c, cell := range g.cells[r] {
			b[r][c] = glyph(cell)
		}
	}
	return b
}

// Repr is the row-major cell string: X for Human, O for Cpu, '.' for empty.
func (g *Game) Repr() string {
	var sb strings.Builder
	sb.Grow(Size * Size)
	for r := range g.cells {
		for _, cell := range g.cells[r] {
			if cell == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(glyph(cell))
		}
	}
	return sb.String()
}

// AllowedMoves lists the empty cells in row-major order. Both players share
// the same moves.
func (g *Game) AllowedMoves(_ game.Player) []Move {
	moves := make([]Move, 0, Size*Size)
	for r := range g.cells {
		for c, cell := range g.cells[r] {
			if cell == 0 {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

func (g *Game) Apply(player game.Player, move Move, record bool) error {
	if player != game.Human && player != game.Cpu {
		return errors.Wrapf(game.ErrIllegalMove, "unknown player %d", player)
	}
	if !inBounds(move) {
		return errors.Wrapf(game.ErrIllegalMove, "cell %s is off the board", move)
	}
	if g.cells[move.Row][move.Col] != 0 {
		return errors.Wrapf(game.ErrIllegalMove, "cell %s is occupied", move)
	}
	g.cells[move.Row][move.Col] = player
	if record {
		g.history = append(g.history, move)
	}
	return nil
}

// CanWin probes each empty cell in place and reverts it. The undo history is
// not involved.
func (g *Game) CanWin(player game.Player) (bool, error) {
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] != 0 {
				continue
			}
			g.cells[r][c] = player
			won := g.IsWinner(player)
			g.cells[r][c] = 0
			if won {
				return true, nil
			}
		}
	}
	return false, nil
}

func (g *Game) Undo() {
	if len(g.history) == 0 {
		return
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.cells[last.Row][last.Col] = 0
}

// Score returns WinScore/depth when player has a line, its negation when the
// opponent has one, and 0 otherwise.
func (g *Game) Score(player game.Player, depth int) (float64, error) {
	d := float64(max(depth, 1))
	switch {
	case g.IsWinner(player):
		return WinScore / d, nil
	case g.IsWinner(player.Opposing()):
		return -WinScore / d, nil
	default:
		return 0, nil
	}
}

func (g *Game) IsTerminal() bool {
	return g.IsWinner(game.Human) || g.IsWinner(game.Cpu) || g.movesLeft() == 0
}

// IsWinner sums each line. With Human = -1, Cpu = +1 and empty = 0, a line
// sums to 3*sign only when all three cells belong to player.
func (g *Game) IsWinner(player game.Player) bool {
	target := int(player) * Size
	for _, line := range lines {
		sum := 0
		for _, cell := range line {
			sum += int(g.cells[cell.Row][cell.Col])
		}
		if sum == target {
			return true
		}
	}
	return false
}

func (g *Game) Reset() {
	g.cells = [Size][Size]game.Player{}
	g.history = nil
}

func (g *Game) movesLeft() int {
	n := 0
	for r := range g.cells {
		for _, cell := range g.cells[r] {
			if cell == 0 {
				n++
			}
		}
	}
	return n
}

func inBounds(m Move) bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

func glyph(p game.Player) string {
	switch p {
	case game.Human:
		return "X"
	case game.Cpu:
		return "O"
	default:
		return ""
	}
}
