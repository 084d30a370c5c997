package board

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/arbiter/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = position.TotalCells

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
)

// Board is a mailbox snapshot indexed by position.Pos. It is a value type:
// assigning a Board copies every cell, which is how scratch positions are made.
type Board [TotalCells]Cell

// At returns CellEmpty for positions off the board.
func (b *Board) At(pos position.Pos) Cell {
	if !pos.Valid() {
		return CellEmpty
	}
	return b[pos]
}

func (b *Board) Set(pos position.Pos, c Cell) {
	if pos.Valid() {
		b[pos] = c
	}
}

func (b *Board) Clone() *Board {
	bb := *b
	return &bb
}

// Occupied returns the bitmap of cells held by side s.
func (b *Board) Occupied(s Side) Bitmap {
	var bm Bitmap
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		if c := b[pos]; !c.IsEmpty() && c.Side() == s {
			bm.Set(pos)
		}
	}
	return bm
}

// Apply plays mv on the board without any legality check and returns the
// captured cell (CellEmpty when nothing was taken) together with the en
// passant target created by the move, or position.NoPos.
//
// A pawn landing diagonally on the empty enPassant cell removes the pawn it
// passed. A pawn reaching its last rank becomes mv.Promote, or a Queen when
// mv.Promote is not a promotion candidate.
func (b *Board) Apply(mv Move, enPassant position.Pos) (Cell, position.Pos) {
	if !mv.From.Valid() || !mv.To.Valid() || mv.From == mv.To {
		return CellEmpty, position.NoPos
	}
	mover := b[mv.From]
	captured := b[mv.To]
	nextEnPassant := position.NoPos
	b[mv.From] = CellEmpty

	if mover.Piece() == PiecePawn {
		s := mover.Side()
		switch dr := mv.To.Rank() - mv.From.Rank(); {
		case mv.To == enPassant && captured.IsEmpty() && mv.From.File() != mv.To.File():
			victim := position.IndexOf(mv.To.File(), mv.From.Rank())
			captured = b[victim]
			b[victim] = CellEmpty
		case dr == 2*s.Forward():
			nextEnPassant = position.IndexOf(mv.From.File(), mv.From.Rank()+s.Forward())
		}
		if mv.To.Rank() == s.PromotionRank() {
			promote := mv.Promote
			if !promote.IsPromotable() {
				promote = PieceQueen
			}
			mover = NewCell(s, promote)
		}
	}
	b[mv.To] = mover
	return captured, nextEnPassant
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for rank := position.Pos(0); rank < Height; rank++ {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %s |", rank.NotationComponentRank()))
		for file := position.Pos(0); file < Width; file++ {
			c := b[position.IndexOf(file, rank)]
			sym := " "
			if !c.IsEmpty() {
				sym = c.String()
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for file := position.Pos(0); file < Width; file++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", file.NotationComponentFile()))
	}
	return builder.String()
}

var (
	colorLabel     = color.New(color.Bold)
	colorCellLight = color.New(color.FgBlack, color.BgHiWhite)
	colorCellDark  = color.New(color.FgBlack, color.BgGreen)
	colorCellMark  = color.New(color.FgBlack, color.BgYellow)
)

// Draw renders the board with terminal colours. Cells set in highlight, e.g.
// an attack map or a piece's legal destinations, are drawn marked.
func (b *Board) Draw(highlight Bitmap) string {
	builder := strings.Builder{}
	for rank := position.Pos(0); rank < Height; rank++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", rank.NotationComponentRank()))
		for file := position.Pos(0); file < Width; file++ {
			pos := position.IndexOf(file, rank)
			sym := " "
			if c := b[pos]; !c.IsEmpty() {
				sym = c.Piece().SymbolUnicode(c.Side())
			}
			cell := colorCellLight
			switch {
			case highlight.IsSet(pos):
				cell = colorCellMark
			case (file+rank)%2 == 1:
				cell = colorCellDark
			}
			_, _ = builder.WriteString(cell.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for file := position.Pos(0); file < Width; file++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", file.NotationComponentFile()))
	}
	return builder.String()
}
