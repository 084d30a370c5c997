package rules

import (
	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

// IsCheckmate reports whether side s, to move, is checkmated. attacks must be
// the freshly built attack map of the opponent. A side without a king on the
// board is never checkmated.
func IsCheckmate(b *board.Board, s board.Side, attacks board.Bitmap, enPassant position.Pos, opts ...Option) bool {
	king, ok := FindKing(b, s)
	if !ok || !attacks.IsSet(king) {
		return false
	}
	return !hasLegalMove(b, s, attacks, enPassant, opts...)
}

// IsStalemate reports whether side s, to move, has no legal move while its
// king is not attacked.
func IsStalemate(b *board.Board, s board.Side, attacks board.Bitmap, enPassant position.Pos, opts ...Option) bool {
	if king, ok := FindKing(b, s); ok && attacks.IsSet(king) {
		return false
	}
	return !hasLegalMove(b, s, attacks, enPassant, opts...)
}

// Status classifies the position for side s to move.
func Status(b *board.Board, s board.Side, enPassant position.Pos, opts ...Option) board.State {
	attacks := AttackMap(b, s.Opposite())
	king, ok := FindKing(b, s)
	checked := ok && attacks.IsSet(king)
	moves := hasLegalMove(b, s, attacks, enPassant, opts...)
	switch {
	case checked && !moves:
		return board.NewStateCheckmate(s)
	case checked:
		return board.NewStateCheck(s)
	case !moves:
		return board.StateStalemate
	default:
		return board.StateRunning
	}
}

func hasLegalMove(b *board.Board, s board.Side, attacks board.Bitmap, enPassant position.Pos, opts ...Option) bool {
	for from := position.Pos(0); from < board.TotalCells; from++ {
		if c := b.At(from); c.IsEmpty() || c.Side() != s {
			continue
		}
		if len(LegalMoves(b, from, attacks, enPassant, opts...)) > 0 {
			return true
		}
	}
	return false
}
