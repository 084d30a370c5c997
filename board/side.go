package board

import "github.com/daystram/arbiter/position"

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// Forward is the rank delta of a pawn push. White moves towards rank 0.
func (s Side) Forward() position.Pos {
	if s == SideWhite {
		return -1
	}
	return 1
}

// PawnStartRank is the rank a pawn may double-push from.
func (s Side) PawnStartRank() position.Pos {
	if s == SideWhite {
		return 6
	}
	return 1
}

// PromotionRank is the last rank a pawn of this side can reach.
func (s Side) PromotionRank() position.Pos {
	if s == SideWhite {
		return 0
	}
	return 7
}
