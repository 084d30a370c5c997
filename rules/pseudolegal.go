// Package rules holds the chess rules engine: pseudolegal generation, attack
// maps, legality filtering and checkmate detection over a board.Board
// snapshot. Every function is a pure query; none of them mutates the board
// it is given.
package rules

import (
	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

// Mode selects between playable moves and threatened squares.
type Mode uint8

const (
	// ModeMove yields destinations a player may actually move to.
	ModeMove Mode = iota
	// ModeAttack yields every square the piece threatens or defends.
	ModeAttack
)

func (m Mode) String() string {
	if m == ModeAttack {
		return "attack"
	}
	return "move"
}

// offset is a (file, rank) step.
type offset struct {
	df, dr position.Pos
}

var (
	offsetsDiagonal = []offset{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	offsetsLateral  = []offset{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	offsetsKnight   = []offset{{-1, -2}, {1, -2}, {-2, -1}, {2, -1}, {-2, 1}, {2, 1}, {-1, 2}, {1, 2}}
	offsetsKing     = []offset{{0, -1}, {-1, 0}, {0, 1}, {1, 0}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

	// rays of sliding pieces, indexed by board.Piece
	offsetsSliding = [...][]offset{
		board.PieceBishop: offsetsDiagonal,
		board.PieceRook:   offsetsLateral,
		board.PieceQueen:  append(append([]offset{}, offsetsDiagonal...), offsetsLateral...),
	}

	// single steps of leaping pieces, indexed by board.Piece
	offsetsLeaping = [...][]offset{
		board.PieceKnight: offsetsKnight,
		board.PieceKing:   offsetsKing,
	}
)

// PseudoLegal returns the destinations of piece standing on from, ignoring
// whether the move exposes its own king. The piece is passed explicitly so
// that a piece lifted off the board can be queried; b is only read.
func PseudoLegal(b *board.Board, piece board.Cell, from position.Pos, mode Mode) []position.Pos {
	return pseudoLegal(b, piece, from, mode, position.NoPos)
}

// pseudoLegal also yields the en passant capture onto enPassant in ModeMove.
func pseudoLegal(b *board.Board, piece board.Cell, from position.Pos, mode Mode, enPassant position.Pos) []position.Pos {
	if piece.IsEmpty() || !from.Valid() {
		return nil
	}
	switch p := piece.Piece(); {
	case p == board.PiecePawn:
		return pawnDestinations(b, piece.Side(), from, mode, enPassant)
	case p.IsSliding():
		return slidingDestinations(b, piece.Side(), from, mode, offsetsSliding[p])
	default:
		return leapingDestinations(b, piece.Side(), from, mode, offsetsLeaping[p])
	}
}

func pawnDestinations(b *board.Board, s board.Side, from position.Pos, mode Mode, enPassant position.Pos) []position.Pos {
	var dsts []position.Pos
	forward := s.Forward()

	if mode == ModeMove {
		if one, ok := from.Offset(0, forward); ok && b.At(one).IsEmpty() {
			dsts = append(dsts, one)
			if from.Rank() == s.PawnStartRank() {
				if two, ok := from.Offset(0, 2*forward); ok && b.At(two).IsEmpty() {
					dsts = append(dsts, two)
				}
			}
		}
	}

	for _, df := range []position.Pos{-1, 1} {
		dst, ok := from.Offset(df, forward)
		if !ok {
			continue
		}
		switch {
		case mode == ModeAttack:
			dsts = append(dsts, dst)
		case b.At(dst).IsEnemyOf(s):
			dsts = append(dsts, dst)
		case dst == enPassant && isEnPassantTarget(b, s, from, dst):
			dsts = append(dsts, dst)
		}
	}
	return dsts
}

// isEnPassantTarget reports whether a pawn of s on from may capture en
// passant onto the empty cell dst, i.e. an enemy pawn just double-pushed
// past dst and stands beside from.
func isEnPassantTarget(b *board.Board, s board.Side, from, dst position.Pos) bool {
	enemy := s.Opposite()
	if !b.At(dst).IsEmpty() || dst.Rank() != enemy.PawnStartRank()+enemy.Forward() {
		return false
	}
	return b.At(position.IndexOf(dst.File(), from.Rank())).Is(enemy, board.PiecePawn)
}

func slidingDestinations(b *board.Board, s board.Side, from position.Pos, mode Mode, rays []offset) []position.Pos {
	var dsts []position.Pos
	for _, o := range rays {
		for dst, ok := from.Offset(o.df, o.dr); ok; dst, ok = dst.Offset(o.df, o.dr) {
			c := b.At(dst)
			if c.IsEmpty() {
				dsts = append(dsts, dst)
				continue
			}
			if mode == ModeAttack || c.IsEnemyOf(s) {
				dsts = append(dsts, dst)
			}
			break
		}
	}
	return dsts
}

func leapingDestinations(b *board.Board, s board.Side, from position.Pos, mode Mode, steps []offset) []position.Pos {
	var dsts []position.Pos
	for _, o := range steps {
		dst, ok := from.Offset(o.df, o.dr)
		if !ok {
			continue
		}
		if c := b.At(dst); mode == ModeAttack || c.IsEmpty() || c.IsEnemyOf(s) {
			dsts = append(dsts, dst)
		}
	}
	return dsts
}
