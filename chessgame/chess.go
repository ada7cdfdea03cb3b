package chessgame

import (
	"strconv"
	"strings"

	"aigames/config"
	"aigames/game"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// WinScore is the value of a checkmate found one ply deep.
const WinScore = 1000.0

// fiftyMoveClock is the half-move clock value that ends the game.
const fiftyMoveClock = 100

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Evaluator values a position for side. Positive favours side.
type Evaluator func(board *chess.Board, side chess.Color) float64

type Option func(g *Game)

func WithEvaluator(e Evaluator) Option {
	return func(g *Game) {
		g.evaluate = e
	}
}

// Game adapts a chess position to the game contract. Human plays White and
// the Cpu plays Black. Moves are written in SAN; UCI text is also accepted
// by Apply.
type Game struct {
	start    *chess.Position
	pos      *chess.Position
	history  []*chess.Position
	evaluate Evaluator
}

var _ game.Game[string] = (*Game)(nil)

// FromConfig returns a new game with the configured evaluator.
func FromConfig(cfg config.ChessGame) *Game {
	if cfg.Evaluator == config.MaterialEvaluator {
		return New(WithEvaluator(MaterialEvaluator))
	}
	return New()
}

func New(opts ...Option) *Game {
	g, err := FromFEN(startFEN, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// FromFEN starts the game from an arbitrary position.
func FromFEN(fen string, opts ...Option) (*Game, error) {
	pos, err := parseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{start: pos, pos: pos}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func parseFEN(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "parse fen %q", fen)
	}
	return chess.NewGame(opt).Position(), nil
}

func color(p game.Player) chess.Color {
	if p == game.Human {
		return chess.White
	}
	return chess.Black
}

// FEN returns the full FEN of the current position.
func (g *Game) FEN() string {
	return g.pos.String()
}

// positionFor returns the current position with player to move. The live
// position is never modified.
func (g *Game) positionFor(p game.Player) *chess.Position {
	if g.pos.Turn() == color(p) {
		return g.pos
	}
	fields := strings.Fields(g.pos.String())
	fields[1] = "w"
	if color(p) == chess.Black {
		fields[1] = "b"
	}
	fields[3] = "-"
	pos, err := parseFEN(strings.Join(fields, " "))
	if err != nil {
		panic(err)
	}
	return pos
}

func (g *Game) Board() game.Board {
	board := g.pos.Board()
	b := make(game.Board, 8)
	for r := 0; r < 8; r++ {
		b[r] = make([]string, 8)
		rank := 7 - r
		for file := 0; file < 8; file++ {
			b[r][file] = glyph(board.Piece(chess.Square(rank*8 + file)))
		}
	}
	return b
}

var glyphs = map[chess.PieceType]string{
	chess.King:   "k",
	chess.Queen:  "q",
	chess.Rook:   "r",
	chess.Bishop: "b",
	chess.Knight: "n",
	chess.Pawn:   "p",
}

func glyph(piece chess.Piece) string {
	if piece == chess.NoPiece {
		return ""
	}
	s := glyphs[piece.Type()]
	if piece.Color() == chess.White {
		s = strings.ToUpper(s)
	}
	return s
}

// Repr is the first four FEN fields: placement, side to move, castling
// rights and en passant square.
func (g *Game) Repr() string {
	return strings.Join(strings.Fields(g.pos.String())[:4], " ")
}

func (g *Game) AllowedMoves(p game.Player) []string {
	pos := g.positionFor(p)
	valid := pos.ValidMoves()
	moves := make([]string, len(valid))
	for i, m := range valid {
		moves[i] = chess.AlgebraicNotation{}.Encode(pos, m)
	}
	return moves
}

func (g *Game) Apply(p game.Player, move string, record bool) error {
	pos := g.positionFor(p)
	m, ok := find(pos, move)
	if !ok {
		return errors.Wrapf(game.ErrIllegalMove, "%s cannot play %q", color(p), move)
	}
	if record {
		g.history = append(g.history, g.pos)
	}
	g.pos = pos.Update(m)
	return nil
}

func find(pos *chess.Position, move string) (*chess.Move, bool) {
	want := strings.TrimRight(strings.TrimSpace(move), "+#")
	algebraic, uci := chess.AlgebraicNotation{}, chess.UCINotation{}
	for _, m := range pos.ValidMoves() {
		san := strings.TrimRight(algebraic.Encode(pos, m), "+#")
		if san == want || uci.Encode(pos, m) == want {
			return m, true
		}
	}
	return nil, false
}

// CanWin reports whether player has a mate in one.
func (g *Game) CanWin(p game.Player) (bool, error) {
	pos := g.positionFor(p)
	for _, m := range pos.ValidMoves() {
		if pos.Update(m).Status() == chess.Checkmate {
			return true, nil
		}
	}
	return false, nil
}

func (g *Game) Undo() {
	if len(g.history) == 0 {
		return
	}
	g.pos = g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
}

func (g *Game) Score(p game.Player, depth int) (float64, error) {
	d := float64(max(depth, 1))
	switch {
	case g.IsWinner(p):
		return WinScore / d, nil
	case g.IsWinner(p.Opposing()):
		return -WinScore / d, nil
	case g.IsTerminal():
		return 0, nil
	case g.evaluate == nil:
		return 0, errors.Wrap(game.ErrUnimplementedRule, "chess position evaluation")
	}
	return g.evaluate(g.pos.Board(), color(p)), nil
}

func (g *Game) IsTerminal() bool {
	switch g.pos.Status() {
	case chess.Checkmate, chess.Stalemate:
		return true
	}
	return g.halfMoveClock() >= fiftyMoveClock
}

// IsWinner reports whether player's opponent is to move and checkmated.
func (g *Game) IsWinner(p game.Player) bool {
	return g.pos.Turn() == color(p.Opposing()) && g.pos.Status() == chess.Checkmate
}

func (g *Game) Reset() {
	g.pos = g.start
	g.history = nil
}

func (g *Game) halfMoveClock() int {
	return halfMoveClock(g.pos.String())
}

// halfMoveClock reads the clock field of fen. A missing or unreadable field
// counts as zero.
func halfMoveClock(fen string) int {
	fields := strings.Fields(fen)
	if len(fields) < 5 {
		return 0
	}
	n, err := strconv.Atoi(fields[4])
	if err != nil || n < 0 {
		log.Warn().Err(err).Str("fen", fen).Msg("unreadable half-move clock")
		return 0
	}
	return n
}

// ParseMove accepts SAN or UCI text as typed by a player.
func ParseMove(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.Wrap(game.ErrIllegalMove, "empty move")
	}
	return s, nil
}
