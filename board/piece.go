package board

import "unicode"

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceBishop
	PieceKnight
	PieceRook
	PieceQueen
	PieceKing
)

// PawnPromoteCandidates represents the candidates for pawn promotion.
var PawnPromoteCandidates = []Piece{PieceBishop, PieceKnight, PieceRook, PieceQueen}

func (p Piece) String() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceBishop:
		return "Bishop"
	case PieceKnight:
		return "Knight"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

// IsSliding reports whether the piece moves along rays.
func (p Piece) IsSliding() bool {
	return p == PieceBishop || p == PieceRook || p == PieceQueen
}

// IsPromotable reports whether a pawn may promote into p.
func (p Piece) IsPromotable() bool {
	for _, c := range PawnPromoteCandidates {
		if p == c {
			return true
		}
	}
	return false
}

// ParseSymbol decodes a FEN piece letter. Uppercase is White.
func ParseSymbol(r rune) (Side, Piece) {
	s := SideWhite
	if unicode.IsLower(r) {
		s = SideBlack
	}
	switch unicode.ToUpper(r) {
	case 'P':
		return s, PiecePawn
	case 'B':
		return s, PieceBishop
	case 'N':
		return s, PieceKnight
	case 'R':
		return s, PieceRook
	case 'Q':
		return s, PieceQueen
	case 'K':
		return s, PieceKing
	default:
		return SideUnknown, PieceUnknown
	}
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceBishop:
		sym = 'B'
	case PieceKnight:
		sym = 'N'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side) string {
	symbols := [...]string{
		PiecePawn:   "♟",
		PieceBishop: "♝",
		PieceKnight: "♞",
		PieceRook:   "♜",
		PieceQueen:  "♛",
		PieceKing:   "♚",
	}
	if s == SideWhite {
		symbols = [...]string{
			PiecePawn:   "♙",
			PieceBishop: "♗",
			PieceKnight: "♘",
			PieceRook:   "♖",
			PieceQueen:  "♕",
			PieceKing:   "♔",
		}
	}
	if p == PieceUnknown || int(p) >= len(symbols) {
		return ""
	}
	return symbols[p]
}
