package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/daystram/arbiter/position"
)

// Bitmap is a 64-bit set of cells; bit i stands for position.Pos(i).
type Bitmap uint64

func (bm *Bitmap) Set(pos position.Pos) {
	if pos.Valid() {
		*bm |= 1 << uint(pos)
	}
}

func (bm *Bitmap) Unset(pos position.Pos) {
	if pos.Valid() {
		*bm &^= 1 << uint(pos)
	}
}

func (bm Bitmap) IsSet(pos position.Pos) bool {
	return pos.Valid() && bm&(1<<uint(pos)) != 0
}

// LS1B returns the lowest set cell, or position.NoPos on an empty bitmap.
func (bm Bitmap) LS1B() position.Pos {
	if bm == 0 {
		return position.NoPos
	}
	return position.Pos(bits.TrailingZeros64(uint64(bm)))
}

func (bm Bitmap) BitCount() uint8 {
	return uint8(bits.OnesCount64(uint64(bm)))
}

// Positions lists the set cells in ascending order.
func (bm Bitmap) Positions() []position.Pos {
	ps := make([]position.Pos, 0, bm.BitCount())
	for bm != 0 {
		pos := bm.LS1B()
		ps = append(ps, pos)
		bm.Unset(pos)
	}
	return ps
}

func NewBitmap(ps ...position.Pos) Bitmap {
	var bm Bitmap
	for _, p := range ps {
		bm.Set(p)
	}
	return bm
}

func (bm Bitmap) Dump(sym ...rune) string {
	builder := strings.Builder{}
	for rank := position.Pos(0); rank < Height; rank++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s |", rank.NotationComponentRank()))
		for file := position.Pos(0); file < Width; file++ {
			if bm.IsSet(position.IndexOf(file, rank)) {
				s := "#"
				if len(sym) == 1 {
					s = string(sym[0])
				}
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", s))
			} else {
				_, _ = builder.WriteString(" . ")
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for file := position.Pos(0); file < Width; file++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", file.NotationComponentFile()))
	}
	return builder.String()
}
