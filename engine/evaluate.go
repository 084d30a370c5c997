package engine

import (
	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

var (
	scoreMaterial = [6 + 1]int32{
		board.PiecePawn:   100,
		board.PieceKnight: 320,
		board.PieceBishop: 350,
		board.PieceRook:   500,
		board.PieceQueen:  900,
	}

	// PST table taken from https://www.chessprogramming.org/Simplified_Evaluation_Function,
	// laid out from White's side with a8 first, the same order as position.Pos.
	scorePiecePosition = [6 + 1][board.TotalCells]int32{
		board.PiecePawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			50, 50, 50, 50, 50, 50, 50, 50,
			10, 10, 20, 30, 30, 20, 10, 10,
			5, 5, 10, 25, 25, 10, 5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, -5, -10, 0, 0, -10, -5, 5,
			5, 10, 10, -20, -20, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		board.PieceKnight: {
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
		board.PieceBishop: {
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		board.PieceRook: {
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 10, 10, 10, 10, 10, 5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			0, 0, 0, 5, 5, 0, 0, 0,
		},
		board.PieceQueen: {
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			0, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 0, -10,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		board.PieceKing: {
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			20, 20, 0, 0, 0, 0, 20, 20,
			20, 30, 10, 0, 0, 10, 30, 20,
		},
	}
)

// evaluate returns the score of b from the point of view of side s: material
// balance, plus the piece-square bonus when the engine is positional.
func (e *Engine) evaluate(b *board.Board, s board.Side) int32 {
	var score int32
	for pos := position.Pos(0); pos < board.TotalCells; pos++ {
		c := b.At(pos)
		if c.IsEmpty() {
			continue
		}
		value := scoreMaterial[c.Piece()]
		if e.positional {
			value += scorePiecePosition[c.Piece()][pstIndex(c.Side(), pos)]
		}
		if c.Side() == s {
			score += value
		} else {
			score -= value
		}
	}
	return score
}

// pstIndex mirrors Black's cells vertically onto the White-side table.
func pstIndex(s board.Side, pos position.Pos) position.Pos {
	if s == board.SideBlack {
		return position.IndexOf(pos.File(), board.Height-1-pos.Rank())
	}
	return pos
}
