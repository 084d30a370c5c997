package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

func TestPseudoLegal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		from string
		mode Mode
		want []string
	}{
		{
			name: "pawn start rank double push",
			fen:  board.DefaultStartingPositionFEN,
			from: "e2",
			want: []string{"e3", "e4"},
		},
		{
			name: "black pawn start rank double push",
			fen:  board.DefaultStartingPositionFEN,
			from: "d7",
			want: []string{"d6", "d5"},
		},
		{
			name: "pawn off start rank single push",
			fen:  "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1",
			from: "e3",
			want: []string{"e4"},
		},
		{
			name: "pawn blocked in front",
			fen:  "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1",
			from: "e2",
			want: nil,
		},
		{
			name: "pawn double push blocked on second square",
			fen:  "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1",
			from: "e2",
			want: []string{"e3"},
		},
		{
			name: "pawn captures enemy only",
			fen:  "4k3/8/8/8/8/3n1N2/4P3/4K3 w - - 0 1",
			from: "e2",
			want: []string{"e3", "e4", "d3"},
		},
		{
			name: "pawn attack mode ignores occupancy",
			fen:  "4k3/8/8/8/8/3n1N2/4P3/4K3 w - - 0 1",
			from: "e2",
			mode: ModeAttack,
			want: []string{"d3", "f3"},
		},
		{
			name: "pawn attack mode on empty diagonals",
			fen:  board.DefaultStartingPositionFEN,
			from: "e2",
			mode: ModeAttack,
			want: []string{"d3", "f3"},
		},
		{
			name: "pawn on a-file does not wrap",
			fen:  "4k3/8/8/8/8/8/P7/4K3 w - - 0 1",
			from: "a2",
			mode: ModeAttack,
			want: []string{"b3"},
		},
		{
			name: "black pawn on h-file does not wrap",
			fen:  "4k3/7p/8/8/8/8/8/4K3 b - - 0 1",
			from: "h7",
			mode: ModeAttack,
			want: []string{"g6"},
		},
		{
			name: "pawn on last rank has nowhere to go",
			fen:  "P3k3/8/8/8/8/8/8/4K3 w - - 0 1",
			from: "a8",
			want: nil,
		},
		{
			name: "rook stops at first blocker",
			fen:  "4k3/8/3p4/8/3R1N2/8/8/4K3 w - - 0 1",
			from: "d4",
			want: []string{"d5", "d6", "d3", "d2", "d1", "c4", "b4", "a4", "e4"},
		},
		{
			name: "rook attack mode includes friendly blocker",
			fen:  "4k3/8/3p4/8/3R1N2/8/8/4K3 w - - 0 1",
			from: "d4",
			mode: ModeAttack,
			want: []string{"d5", "d6", "d3", "d2", "d1", "c4", "b4", "a4", "e4", "f4"},
		},
		{
			name: "rook on a-file does not wrap",
			fen:  "4k3/8/8/8/R7/8/8/4K3 w - - 0 1",
			from: "a4",
			want: []string{"a8", "a7", "a6", "a5", "a3", "a2", "a1", "b4", "c4", "d4", "e4", "f4", "g4", "h4"},
		},
		{
			name: "bishop in corner",
			fen:  "4k3/8/8/8/8/8/8/B3K3 w - - 0 1",
			from: "a1",
			want: []string{"b2", "c3", "d4", "e5", "f6", "g7", "h8"},
		},
		{
			name: "bishop captures but not beyond",
			fen:  "4k3/8/8/8/8/2p5/8/B3K3 w - - 0 1",
			from: "a1",
			want: []string{"b2", "c3"},
		},
		{
			name: "attack mode marks king on ray but not beyond",
			fen:  "8/8/8/8/8/8/8/R3k3 w - - 0 1",
			from: "a1",
			mode: ModeAttack,
			want: []string{"a2", "a3", "a4", "a5", "a6", "a7", "a8", "b1", "c1", "d1", "e1"},
		},
		{
			name: "knight in corner",
			fen:  "4k3/8/8/8/8/8/8/N3K3 w - - 0 1",
			from: "a1",
			want: []string{"b3", "c2"},
		},
		{
			name: "knight skips friendly",
			fen:  "4k3/8/8/8/8/1P6/8/N3K3 w - - 0 1",
			from: "a1",
			want: []string{"c2"},
		},
		{
			name: "knight attack mode defends friendly",
			fen:  "4k3/8/8/8/8/1P6/8/N3K3 w - - 0 1",
			from: "a1",
			mode: ModeAttack,
			want: []string{"b3", "c2"},
		},
		{
			name: "king on edge",
			fen:  "4k3/8/8/8/8/8/3P4/4K3 w - - 0 1",
			from: "e1",
			want: []string{"e2", "d1", "f1", "f2"},
		},
		{
			name: "king attack mode defends friendly",
			fen:  "4k3/8/8/8/8/8/3P4/4K3 w - - 0 1",
			from: "e1",
			mode: ModeAttack,
			want: []string{"e2", "d1", "f1", "d2", "f2"},
		},
		{
			name: "empty origin",
			fen:  board.DefaultStartingPositionFEN,
			from: "e4",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, _, _ := mustFEN(t, tt.fen)
			from := sq(t, tt.from)
			got := PseudoLegal(b, b.At(from), from, tt.mode)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, sqs(t, tt.want...), got)
		})
	}
}

func TestPseudoLegalInvalidInput(t *testing.T) {
	t.Parallel()
	b, _, _ := mustFEN(t, board.DefaultStartingPositionFEN)
	rook := board.NewCell(board.SideWhite, board.PieceRook)
	for _, from := range []position.Pos{position.NoPos, board.TotalCells, 100, -100} {
		assert.NotPanics(t, func() {
			assert.Empty(t, PseudoLegal(b, rook, from, ModeMove))
		})
	}
	assert.Empty(t, PseudoLegal(b, board.Cell(0xFF), 36, ModeMove))
}

func TestSlidingNeverPassesBlocker(t *testing.T) {
	t.Parallel()
	for _, p := range []board.Piece{board.PieceBishop, board.PieceRook, board.PieceQueen} {
		for from := position.Pos(0); from < board.TotalCells; from++ {
			for blocker := position.Pos(0); blocker < board.TotalCells; blocker++ {
				if blocker == from {
					continue
				}
				var b board.Board
				piece := board.NewCell(board.SideWhite, p)
				b.Set(from, piece)
				b.Set(blocker, board.NewCell(board.SideBlack, board.PiecePawn))
				for _, dst := range PseudoLegal(&b, piece, from, ModeAttack) {
					assert.False(t, isBeyond(from, blocker, dst), "%s %s blocked by %s reached %s", p, from, blocker, dst)
				}
			}
		}
	}
}

// isBeyond reports whether dst lies on the ray from origin through blocker, past blocker.
func isBeyond(origin, blocker, dst position.Pos) bool {
	bf, br := blocker.File()-origin.File(), blocker.Rank()-origin.Rank()
	df, dr := dst.File()-origin.File(), dst.Rank()-origin.Rank()
	if bf*dr != br*df || bf*df < 0 || br*dr < 0 {
		return false
	}
	return abs(df) > abs(bf) || abs(dr) > abs(br)
}

func TestSlidingEmptyBoardReach(t *testing.T) {
	t.Parallel()
	tests := []struct {
		piece board.Piece
		from  string
		want  int
	}{
		{piece: board.PieceRook, from: "a1", want: 14},
		{piece: board.PieceRook, from: "d4", want: 14},
		{piece: board.PieceBishop, from: "a1", want: 7},
		{piece: board.PieceBishop, from: "d4", want: 13},
		{piece: board.PieceQueen, from: "d4", want: 27},
		{piece: board.PieceQueen, from: "h8", want: 21},
	}
	for _, tt := range tests {
		var b board.Board
		from := sq(t, tt.from)
		piece := board.NewCell(board.SideBlack, tt.piece)
		b.Set(from, piece)
		assert.Len(t, PseudoLegal(&b, piece, from, ModeMove), tt.want, "%s on %s", tt.piece, tt.from)
	}
}

func TestLeapingGeometry(t *testing.T) {
	t.Parallel()
	for from := position.Pos(0); from < board.TotalCells; from++ {
		var b board.Board
		knight := board.NewCell(board.SideWhite, board.PieceKnight)
		for _, dst := range PseudoLegal(&b, knight, from, ModeMove) {
			df, dr := abs(dst.File()-from.File()), abs(dst.Rank()-from.Rank())
			assert.True(t, df == 1 && dr == 2 || df == 2 && dr == 1, "knight %s to %s", from, dst)
		}
		king := board.NewCell(board.SideWhite, board.PieceKing)
		dsts := PseudoLegal(&b, king, from, ModeMove)
		for _, dst := range dsts {
			df, dr := abs(dst.File()-from.File()), abs(dst.Rank()-from.Rank())
			assert.True(t, df <= 1 && dr <= 1 && dst != from, "king %s to %s", from, dst)
		}
		assert.GreaterOrEqual(t, len(dsts), 3)
	}
}
