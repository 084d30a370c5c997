package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/daystram/arbiter/position"
)

var (
	ErrInvalidFEN = errors.New("invalid fen")
)

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

// NewBoard decodes the configured FEN, the standard starting position by default.
func NewBoard(opts ...BoardOption) (*Board, Side, position.Pos, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}
	return ParseFEN(cfg.fen)
}

// ParseFEN decodes a FEN record. Only the placement field is required; a
// missing side to move defaults to White and a missing en passant field to
// position.NoPos. Castling and clock fields are validated and ignored.
// Positions without kings are accepted.
func ParseFEN(fen string) (*Board, Side, position.Pos, error) {
	segments := strings.Fields(fen)
	if len(segments) == 0 || len(segments) > 6 {
		return nil, SideUnknown, position.NoPos, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	b, err := parsePlacement(segments[0])
	if err != nil {
		return nil, SideUnknown, position.NoPos, err
	}

	turn := SideWhite
	if len(segments) > 1 {
		switch segments[1] {
		case "w":
			turn = SideWhite
		case "b":
			turn = SideBlack
		default:
			return nil, SideUnknown, position.NoPos, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
		}
	}

	if len(segments) > 2 && !isCastlingField(segments[2]) {
		return nil, SideUnknown, position.NoPos, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}

	enPassant := position.NoPos
	if len(segments) > 3 && segments[3] != "-" {
		enPassant, err = position.NewPosFromNotation(segments[3])
		if err != nil {
			return nil, SideUnknown, position.NoPos, fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		// the target sits behind a pawn that just double-pushed
		if want := turn.Opposite().PawnStartRank() + turn.Opposite().Forward(); enPassant.Rank() != want {
			return nil, SideUnknown, position.NoPos, fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN)
		}
	}

	for i, name := range []string{"half move clock", "full move clock"} {
		if len(segments) > 4+i {
			if _, err := strconv.ParseUint(segments[4+i], 10, 64); err != nil {
				return nil, SideUnknown, position.NoPos, fmt.Errorf("%w: invalid %s", ErrInvalidFEN, name)
			}
		}
	}

	return b, turn, enPassant, nil
}

func parsePlacement(placement string) (*Board, error) {
	rows := strings.Split(placement, "/")
	if len(rows) != int(Height) {
		return nil, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	b := &Board{}
	for rank := position.Pos(0); rank < Height; rank++ {
		file := position.Pos(0)
		for _, cell := range rows[rank] {
			if file >= Width {
				return nil, fmt.Errorf("%w: too many cells", ErrInvalidFEN)
			}
			if '0' <= cell && cell <= '9' {
				skip := position.Pos(cell - '0')
				if skip == 0 || file+skip > Width {
					return nil, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				file += skip
				continue
			}
			s, p := ParseSymbol(cell)
			if p == PieceUnknown {
				return nil, fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			b[position.IndexOf(file, rank)] = NewCell(s, p)
			file++
		}
		if file != Width {
			return nil, fmt.Errorf("%w: missing cells", ErrInvalidFEN)
		}
	}
	return b, nil
}

func isCastlingField(f string) bool {
	if f == "-" {
		return true
	}
	if len(f) == 0 || len(f) > 4 {
		return false
	}
	for _, r := range f {
		if !strings.ContainsRune("KQkq", r) {
			return false
		}
	}
	return true
}

// MarshalFEN encodes the board with the given side to move and en passant
// target. Castling is never available and clocks are reset.
func MarshalFEN(b *Board, turn Side, enPassant position.Pos) string {
	builder := strings.Builder{}
	for rank := position.Pos(0); rank < Height; rank++ {
		var skip int
		for file := position.Pos(0); file < Width; file++ {
			c := b[position.IndexOf(file, rank)]
			if c.IsEmpty() {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = builder.WriteString(c.String())
		}
		if skip != 0 {
			_, _ = builder.WriteString(strconv.Itoa(skip))
		}
		if rank < Height-1 {
			_, _ = builder.WriteRune('/')
		}
	}

	if turn == SideBlack {
		_, _ = builder.WriteString(" b - ")
	} else {
		_, _ = builder.WriteString(" w - ")
	}

	if enPassant.Valid() {
		_, _ = builder.WriteString(enPassant.Notation())
	} else {
		_, _ = builder.WriteRune('-')
	}

	_, _ = builder.WriteString(" 0 1")
	return builder.String()
}
