package rules

import (
	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

// AttackMap returns the cells threatened by the pieces of side s. It is
// rebuilt from scratch on every call.
func AttackMap(b *board.Board, s board.Side) board.Bitmap {
	var attacks board.Bitmap
	for from := position.Pos(0); from < board.TotalCells; from++ {
		c := b.At(from)
		if c.IsEmpty() || c.Side() != s {
			continue
		}
		for _, dst := range PseudoLegal(b, c, from, ModeAttack) {
			attacks.Set(dst)
		}
	}
	return attacks
}

// IsAttacked reports whether pos is threatened by side s.
func IsAttacked(b *board.Board, s board.Side, pos position.Pos) bool {
	return AttackMap(b, s).IsSet(pos)
}

// FindKing returns the cell of the king of side s. ok is false when the side
// has no king on the board, e.g. while it is lifted.
func FindKing(b *board.Board, s board.Side) (position.Pos, bool) {
	for pos := position.Pos(0); pos < board.TotalCells; pos++ {
		if b.At(pos).Is(s, board.PieceKing) {
			return pos, true
		}
	}
	return position.NoPos, false
}

// IsKingChecked reports whether side s has a king and it is attacked.
func IsKingChecked(b *board.Board, s board.Side) bool {
	king, ok := FindKing(b, s)
	return ok && IsAttacked(b, s.Opposite(), king)
}
