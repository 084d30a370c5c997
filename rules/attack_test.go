package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

func TestAttackMapInitialPosition(t *testing.T) {
	t.Parallel()
	b, _, _ := mustFEN(t, board.DefaultStartingPositionFEN)
	tests := []struct {
		side      board.Side
		frontRank position.Pos
		quietFrom position.Pos
		quietTo   position.Pos
	}{
		{side: board.SideWhite, frontRank: 5, quietFrom: 0, quietTo: 4},
		{side: board.SideBlack, frontRank: 2, quietFrom: 3, quietTo: 7},
	}
	for _, tt := range tests {
		attacks := AttackMap(b, tt.side)
		for file := position.Pos(0); file < board.Width; file++ {
			assert.True(t, attacks.IsSet(position.IndexOf(file, tt.frontRank)), "%s misses file %d", tt.side, file)
		}
		for rank := tt.quietFrom; rank <= tt.quietTo; rank++ {
			for file := position.Pos(0); file < board.Width; file++ {
				assert.False(t, attacks.IsSet(position.IndexOf(file, rank)), "%s reaches %s", tt.side, position.IndexOf(file, rank))
			}
		}
	}
}

func TestAttackMapIsUnionOfPieces(t *testing.T) {
	t.Parallel()
	fens := []string{
		board.DefaultStartingPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4r2k/8/8/1B6/R7/8/7P/4K1N1 w - - 0 1",
	}
	for _, fen := range fens {
		b, _, _ := mustFEN(t, fen)
		for _, s := range []board.Side{board.SideWhite, board.SideBlack} {
			// reverse scan order, the map must not depend on it
			var want board.Bitmap
			for from := position.Pos(board.TotalCells - 1); from >= 0; from-- {
				if c := b.At(from); !c.IsEmpty() && c.Side() == s {
					for _, dst := range PseudoLegal(b, c, from, ModeAttack) {
						want.Set(dst)
					}
				}
			}
			assert.Equal(t, want, AttackMap(b, s), "%s on %s", s, fen)
		}
	}
}

func TestAttackMapEmptySide(t *testing.T) {
	t.Parallel()
	b, _, _ := mustFEN(t, "8/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Zero(t, AttackMap(b, board.SideBlack))
	assert.Equal(t, uint8(5), AttackMap(b, board.SideWhite).BitCount())
}

func TestIsKingChecked(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		side board.Side
		want bool
	}{
		{name: "initial position", fen: board.DefaultStartingPositionFEN, side: board.SideWhite, want: false},
		{name: "rook on open file", fen: "4r2k/8/8/8/8/8/8/4K3 w - - 0 1", side: board.SideWhite, want: true},
		{name: "rook behind blocker", fen: "4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1", side: board.SideWhite, want: false},
		{name: "pawn diagonal", fen: "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", side: board.SideWhite, want: true},
		{name: "pawn straight ahead", fen: "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", side: board.SideWhite, want: false},
		{name: "knight", fen: "4k3/8/3N4/8/8/8/8/4K3 b - - 0 1", side: board.SideBlack, want: true},
		{name: "no king", fen: "4r3/8/8/8/8/8/8/8 w - - 0 1", side: board.SideWhite, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, _, _ := mustFEN(t, tt.fen)
			assert.Equal(t, tt.want, IsKingChecked(b, tt.side))
		})
	}
}

func TestFindKing(t *testing.T) {
	t.Parallel()
	b, _, _ := mustFEN(t, board.DefaultStartingPositionFEN)
	pos, ok := FindKing(b, board.SideWhite)
	assert.True(t, ok)
	assert.Equal(t, sq(t, "e1"), pos)
	pos, ok = FindKing(b, board.SideBlack)
	assert.True(t, ok)
	assert.Equal(t, sq(t, "e8"), pos)

	b.Set(sq(t, "e8"), board.CellEmpty)
	pos, ok = FindKing(b, board.SideBlack)
	assert.False(t, ok)
	assert.Equal(t, position.NoPos, pos)
}
