package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8

	// TotalCells is the number of cells on the board.
	TotalCells = MaxComponentScalar * MaxComponentScalar

	// NoPos marks the absence of a square, e.g. no en passant target.
	NoPos Pos = -1
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a linear cell index, rank*8 + file. Rank 0 is the eighth rank,
// so the board is indexed from its top-left corner (a8).
type Pos int8

// FileOf returns the file component of a linear index.
func FileOf(p Pos) Pos {
	return p % MaxComponentScalar
}

// RankOf returns the rank component of a linear index.
func RankOf(p Pos) Pos {
	return p / MaxComponentScalar
}

// IndexOf is the inverse of FileOf and RankOf. Callers must check InBounds first.
func IndexOf(file, rank Pos) Pos {
	return rank*MaxComponentScalar + file
}

// InBounds reports whether both components lie on the board.
func InBounds(file, rank Pos) bool {
	return 0 <= file && file < MaxComponentScalar && 0 <= rank && rank < MaxComponentScalar
}

func NewPosFromNotation(n string) (Pos, error) {
	file, rank, err := notationToFileRank(n)
	if err != nil {
		return NoPos, err
	}
	return IndexOf(file, rank), nil
}

// Offset returns the cell reached by moving df files and dr ranks away from p.
// ok is false when the destination leaves the board.
func (p Pos) Offset(df, dr Pos) (Pos, bool) {
	file, rank := p.File()+df, p.Rank()+dr
	if !InBounds(file, rank) {
		return NoPos, false
	}
	return IndexOf(file, rank), true
}

func (p Pos) Valid() bool {
	return 0 <= p && p < TotalCells
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.Valid() {
		return ""
	}
	return p.File().NotationComponentFile() + p.Rank().NotationComponentRank()
}

func (p Pos) File() Pos {
	return FileOf(p)
}

func (p Pos) Rank() Pos {
	return RankOf(p)
}

func notationToFileRank(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	file, err := notationToFile(n[0])
	if err != nil {
		return 0, 0, err
	}
	rank, err := notationToRank(n[1])
	if err != nil {
		return 0, 0, err
	}
	return file, rank, nil
}

func notationToFile(f byte) (Pos, error) {
	if f < 'a' || f > 'h' {
		return 0, ErrInvalidNotation
	}
	return Pos(f - 'a'), nil
}

// '8' is rank 0 and '1' is rank 7.
func notationToRank(r byte) (Pos, error) {
	if r < '1' || r > '8' {
		return 0, ErrInvalidNotation
	}
	return Pos('8' - r), nil
}

func (p Pos) NotationComponentFile() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentRank() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('8' - p))
}
