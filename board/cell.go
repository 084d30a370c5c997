package board

// Cell is the content of one square, encoded as side<<4 | piece.
// The zero value is an empty square.
type Cell uint8

const CellEmpty Cell = 0

func NewCell(s Side, p Piece) Cell {
	if s != SideWhite && s != SideBlack || p == PieceUnknown || p > PieceKing {
		return CellEmpty
	}
	return Cell(uint8(s)<<4 | uint8(p))
}

// Side returns SideUnknown for empty or undecodable cells.
func (c Cell) Side() Side {
	if c.IsEmpty() {
		return SideUnknown
	}
	return Side(c >> 4)
}

// Piece returns PieceUnknown for empty or undecodable cells.
func (c Cell) Piece() Piece {
	if c.IsEmpty() {
		return PieceUnknown
	}
	return Piece(c & 0x0F)
}

// IsEmpty treats any code that does not decode to a known side and piece as empty.
func (c Cell) IsEmpty() bool {
	s, p := Side(c>>4), Piece(c&0x0F)
	return s != SideWhite && s != SideBlack || p == PieceUnknown || p > PieceKing
}

func (c Cell) Is(s Side, p Piece) bool {
	return !c.IsEmpty() && c.Side() == s && c.Piece() == p
}

// IsEnemyOf reports whether c holds a piece of the side opposing s.
func (c Cell) IsEnemyOf(s Side) bool {
	return !c.IsEmpty() && c.Side() == s.Opposite()
}

func (c Cell) String() string {
	if c.IsEmpty() {
		return "."
	}
	return c.Piece().SymbolFEN(c.Side())
}
