package rules

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

// Policy decides how the legal filter treats a side whose king is in check.
type Policy uint8

const (
	// PolicyResolve simulates every candidate and keeps those after which
	// the mover's king is not attacked.
	PolicyResolve Policy = iota
	// PolicyFreeze offers no move at all while the mover's king is in check.
	PolicyFreeze
)

func (p Policy) String() string {
	if p == PolicyFreeze {
		return "freeze"
	}
	return "resolve"
}

type config struct {
	policy Policy
}

type Option func(*config)

func WithPolicy(p Policy) Option {
	return func(cfg *config) {
		cfg.policy = p
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{policy: PolicyResolve}
	for _, f := range opts {
		f(cfg)
	}
	return cfg
}

// LegalMoves returns the legal destinations of the piece on from. attacks is
// the opponent's current attack map and enPassant the capturable-through
// cell, or position.NoPos.
//
// When the mover's side has no king on the board, only destinations outside
// attacks are kept: the missing king is taken to be the piece being queried.
func LegalMoves(b *board.Board, from position.Pos, attacks board.Bitmap, enPassant position.Pos, opts ...Option) []position.Pos {
	piece := b.At(from)
	if piece.IsEmpty() {
		return nil
	}
	cfg := newConfig(opts)

	king, ok := FindKing(b, piece.Side())
	if !ok {
		return unattacked(pseudoLegal(b, piece, from, ModeMove, enPassant), attacks)
	}
	if cfg.policy == PolicyFreeze && attacks.IsSet(king) {
		return nil
	}
	return kingSafe(b, piece, from, enPassant)
}

// FloatingMoves answers LegalMoves for a piece lifted off from, so that
// b.At(from) is empty. A lifted king may only land outside attacks, which
// must have been built on b without it. Under PolicyFreeze a king lifted
// from an attacked cell has no destination. Any other piece is put back on
// a scratch copy and filtered as usual.
func FloatingMoves(b *board.Board, piece board.Cell, from position.Pos, attacks board.Bitmap, enPassant position.Pos, opts ...Option) []position.Pos {
	if piece.IsEmpty() || !from.Valid() {
		return nil
	}
	if piece.Piece() == board.PieceKing {
		if newConfig(opts).policy == PolicyFreeze && attacks.IsSet(from) {
			return nil
		}
		return unattacked(pseudoLegal(b, piece, from, ModeMove, enPassant), attacks)
	}
	scratch := *b
	scratch.Set(from, piece)
	return LegalMoves(&scratch, from, AttackMap(&scratch, piece.Side().Opposite()), enPassant, opts...)
}

// IsLegal reports whether moving the piece on from to to is legal.
func IsLegal(b *board.Board, from, to position.Pos, attacks board.Bitmap, enPassant position.Pos, opts ...Option) bool {
	return slices.Contains(LegalMoves(b, from, attacks, enPassant, opts...), to)
}

func kingSafe(b *board.Board, piece board.Cell, from, enPassant position.Pos) []position.Pos {
	var legal []position.Pos
	for _, to := range pseudoLegal(b, piece, from, ModeMove, enPassant) {
		scratch := *b
		scratch.Apply(board.Move{From: from, To: to}, enPassant)
		if !IsKingChecked(&scratch, piece.Side()) {
			legal = append(legal, to)
		}
	}
	return legal
}

func unattacked(dsts []position.Pos, attacks board.Bitmap) []position.Pos {
	var safe []position.Pos
	for _, dst := range dsts {
		if !attacks.IsSet(dst) {
			safe = append(safe, dst)
		}
	}
	return safe
}

// MoveSet maps an origin cell to its legal destinations. Origins without any
// destination are left out.
type MoveSet map[position.Pos][]position.Pos

// AllLegalMoves builds the opponent attack map once and collects the legal
// destinations of every piece of side s.
func AllLegalMoves(b *board.Board, s board.Side, enPassant position.Pos, opts ...Option) MoveSet {
	attacks := AttackMap(b, s.Opposite())
	ms := make(MoveSet)
	for from := position.Pos(0); from < board.TotalCells; from++ {
		if c := b.At(from); c.IsEmpty() || c.Side() != s {
			continue
		}
		if dsts := LegalMoves(b, from, attacks, enPassant, opts...); len(dsts) > 0 {
			ms[from] = dsts
		}
	}
	return ms
}

// Len counts destinations over all origins.
func (ms MoveSet) Len() int {
	var n int
	for _, dsts := range ms {
		n += len(dsts)
	}
	return n
}

func (ms MoveSet) Has(from, to position.Pos) bool {
	return slices.Contains(ms[from], to)
}

// Origins lists the origins in ascending cell order.
func (ms MoveSet) Origins() []position.Pos {
	origins := maps.Keys(ms)
	slices.Sort(origins)
	return origins
}

// Moves flattens the set in origin order. A pawn destination on its last
// rank expands into one move per promotion candidate.
func (ms MoveSet) Moves(b *board.Board) []board.Move {
	mvs := make([]board.Move, 0, ms.Len())
	for _, from := range ms.Origins() {
		c := b.At(from)
		for _, to := range ms[from] {
			if c.Piece() == board.PiecePawn && to.Rank() == c.Side().PromotionRank() {
				for _, p := range board.PawnPromoteCandidates {
					mvs = append(mvs, board.Move{From: from, To: to, Promote: p})
				}
				continue
			}
			mvs = append(mvs, board.Move{From: from, To: to})
		}
	}
	return mvs
}
