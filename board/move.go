package board

import (
	"fmt"

	"github.com/daystram/arbiter/position"
)

type Move struct {
	From, To position.Pos
	Promote  Piece
}

func (m Move) String() string {
	return m.UCI()
}

func (m Move) UCI() string {
	s := m.From.Notation() + m.To.Notation()
	if m.Promote != PieceUnknown {
		s += m.Promote.SymbolFEN(SideBlack)
	}
	return s
}

func (m Move) IsNull() bool {
	return m.From == m.To
}

// ParseUCI decodes coordinate notation such as "e2e4" or "e7e8q".
func ParseUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", position.ErrInvalidNotation, s)
	}
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", err, s)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", err, s)
	}
	mv := Move{From: from, To: to}
	if len(s) == 5 {
		_, p := ParseSymbol(rune(s[4]))
		if !p.IsPromotable() {
			return Move{}, fmt.Errorf("%w: bad promotion in %q", position.ErrInvalidNotation, s)
		}
		mv.Promote = p
	}
	return mv, nil
}
