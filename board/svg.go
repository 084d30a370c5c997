package board

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/daystram/arbiter/position"
)

const svgCellSize = 45

var (
	svgStyleLight = "fill:#f6d6bd"
	svgStyleDark  = "fill:#4e495f"
	svgStyleMark  = "fill:#e8c547;fill-opacity:0.75"
	svgStylePiece = "font-size:36px;text-anchor:middle;dominant-baseline:central;font-family:sans-serif"
	svgStyleLabel = "font-size:10px;fill:#888;font-family:sans-serif"
)

// WriteSVG renders the board as an SVG image, marking the cells set in highlight.
func WriteSVG(w io.Writer, b *Board, highlight Bitmap) {
	size := int(Width) * svgCellSize
	canvas := svg.New(w)
	canvas.Start(size, size)
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		x, y := int(pos.File())*svgCellSize, int(pos.Rank())*svgCellSize
		style := svgStyleLight
		if (pos.File()+pos.Rank())%2 == 1 {
			style = svgStyleDark
		}
		canvas.Rect(x, y, svgCellSize, svgCellSize, style)
		if highlight.IsSet(pos) {
			canvas.Rect(x, y, svgCellSize, svgCellSize, svgStyleMark)
		}
		if pos.File() == 0 {
			canvas.Text(x+2, y+11, pos.Rank().NotationComponentRank(), svgStyleLabel)
		}
		if pos.Rank() == Height-1 {
			canvas.Text(x+svgCellSize-8, y+svgCellSize-3, pos.File().NotationComponentFile(), svgStyleLabel)
		}
		if c := b.At(pos); !c.IsEmpty() {
			canvas.Text(x+svgCellSize/2, y+svgCellSize/2, c.Piece().SymbolUnicode(c.Side()), svgStylePiece)
		}
	}
	canvas.End()
}
