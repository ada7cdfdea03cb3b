package chessgame

import "github.com/notnil/chess"

var pieceValues = map[chess.PieceType]float64{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

// MaterialEvaluator is the material balance for side in pawn units.
func MaterialEvaluator(board *chess.Board, side chess.Color) float64 {
	score := 0.0
	for _, piece := range board.SquareMap() {
		v := pieceValues[piece.Type()]
		if piece.Color() == side {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
