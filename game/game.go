// Package game drives a single chess game on top of the rules package: it
// owns the board, the side to move and the en passant target, validates
// moves from either a whole move or a lift/drop gesture, and keeps the game
// state current after every committed move.
//
// A Game is not safe for concurrent use.
package game

import (
	"errors"
	"fmt"

	"github.com/apex/log"
	"golang.org/x/exp/slices"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
	"github.com/daystram/arbiter/rules"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNoPiece     = errors.New("no piece")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = errors.New("illegal move")
	ErrEmptyHand   = errors.New("no piece lifted")
	ErrHandFull    = errors.New("piece already lifted")
)

type config struct {
	fen    string
	logger log.Interface
	policy rules.Policy
}

type Option func(*config)

// WithFEN starts the game from fen instead of the standard position.
func WithFEN(fen string) Option {
	return func(cfg *config) {
		cfg.fen = fen
	}
}

func WithLogger(l log.Interface) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithPolicy selects how moves are filtered while the side to move is in
// check. rules.PolicyResolve is the default.
func WithPolicy(p rules.Policy) Option {
	return func(cfg *config) {
		cfg.policy = p
	}
}

type Game struct {
	board     *board.Board
	turn      board.Side
	enPassant position.Pos
	state     board.State

	hand     board.Cell
	handFrom position.Pos

	policy rules.Policy
	logger log.Interface
}

func New(opts ...Option) (*Game, error) {
	cfg := &config{
		fen:    board.DefaultStartingPositionFEN,
		logger: log.Log,
		policy: rules.PolicyResolve,
	}
	for _, f := range opts {
		f(cfg)
	}

	b, turn, ep, err := board.NewBoard(board.WithFEN(cfg.fen))
	if err != nil {
		return nil, err
	}
	g := &Game{
		board:     b,
		turn:      turn,
		enPassant: ep,
		handFrom:  position.NoPos,
		policy:    cfg.policy,
		logger:    cfg.logger,
	}
	g.state = rules.Status(g.board, g.turn, g.enPassant, g.ruleOpts()...)
	return g, nil
}

// Move validates and plays mv for the side to move. A pawn reaching its last
// rank without mv.Promote becomes a Queen.
func (g *Game) Move(mv board.Move) error {
	if !g.hand.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrHandFull, g.handFrom)
	}
	if err := g.checkOrigin(mv.From); err != nil {
		return err
	}
	if !g.isLegal(mv) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, mv)
	}
	g.commit(mv)
	return nil
}

// Lift picks the piece on pos up into the hand. The cell stays empty until
// the piece is dropped or the gesture is cancelled.
func (g *Game) Lift(pos position.Pos) error {
	if !g.hand.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrHandFull, g.handFrom)
	}
	if err := g.checkOrigin(pos); err != nil {
		return err
	}
	g.hand, g.handFrom = g.board.At(pos), pos
	g.board.Set(pos, board.CellEmpty)
	return nil
}

// Drop puts the lifted piece on pos. Dropping it back on its origin cancels
// the gesture. An illegal drop returns the piece to its origin and reports
// ErrIllegalMove.
func (g *Game) Drop(pos position.Pos) error {
	if g.hand.IsEmpty() {
		return ErrEmptyHand
	}
	piece, from := g.hand, g.handFrom
	dsts := g.floatingMoves()
	g.Cancel()
	if pos == from {
		return nil
	}
	if !slices.Contains(dsts, pos) {
		return fmt.Errorf("%w: %s %s%s", ErrIllegalMove, piece.Piece(), from, pos)
	}
	g.commit(board.Move{From: from, To: pos})
	return nil
}

// Cancel returns a lifted piece to its origin. It is a no-op with an empty hand.
func (g *Game) Cancel() {
	if g.hand.IsEmpty() {
		return
	}
	g.board.Set(g.handFrom, g.hand)
	g.hand, g.handFrom = board.CellEmpty, position.NoPos
}

// Hand returns the lifted piece and its origin, or board.CellEmpty and
// position.NoPos.
func (g *Game) Hand() (board.Cell, position.Pos) {
	return g.hand, g.handFrom
}

// Board returns a copy of the current board. While a piece is lifted its
// origin reads as empty.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

func (g *Game) Turn() board.Side {
	return g.turn
}

func (g *Game) EnPassant() position.Pos {
	return g.enPassant
}

func (g *Game) Policy() rules.Policy {
	return g.policy
}

func (g *Game) State() board.State {
	return g.state
}

// LegalMoves returns the legal destinations of the piece on pos, or of the
// lifted piece when pos is its origin. Pieces of the side not to move have
// none.
func (g *Game) LegalMoves(pos position.Pos) []position.Pos {
	if !g.hand.IsEmpty() && pos == g.handFrom {
		return g.floatingMoves()
	}
	if c := g.board.At(pos); c.IsEmpty() || c.Side() != g.turn {
		return nil
	}
	return rules.LegalMoves(g.board, pos, g.Attacks(g.turn.Opposite()), g.enPassant, g.ruleOpts()...)
}

func (g *Game) AllLegalMoves() rules.MoveSet {
	return rules.AllLegalMoves(g.board, g.turn, g.enPassant, g.ruleOpts()...)
}

// Moves lists every legal move of the side to move, promotions expanded.
func (g *Game) Moves() []board.Move {
	return g.AllLegalMoves().Moves(g.board)
}

func (g *Game) Attacks(s board.Side) board.Bitmap {
	return rules.AttackMap(g.board, s)
}

func (g *Game) FEN() string {
	return board.MarshalFEN(g.board, g.turn, g.enPassant)
}

// Clone copies the game, including a lifted piece.
func (g *Game) Clone() *Game {
	gg := *g
	gg.board = g.board.Clone()
	return &gg
}

func (g *Game) checkOrigin(pos position.Pos) error {
	if !g.state.IsRunning() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}
	c := g.board.At(pos)
	if c.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrNoPiece, pos)
	}
	if c.Side() != g.turn {
		return fmt.Errorf("%w: %s to move", ErrNotYourTurn, g.turn)
	}
	return nil
}

func (g *Game) isLegal(mv board.Move) bool {
	if mv.Promote != board.PieceUnknown {
		c := g.board.At(mv.From)
		if !mv.Promote.IsPromotable() || c.Piece() != board.PiecePawn || mv.To.Rank() != c.Side().PromotionRank() {
			return false
		}
	}
	return rules.IsLegal(g.board, mv.From, mv.To, g.Attacks(g.turn.Opposite()), g.enPassant, g.ruleOpts()...)
}

// floatingMoves checks the lifted piece against the opponent's map built
// without it.
func (g *Game) floatingMoves() []position.Pos {
	attacks := g.Attacks(g.turn.Opposite())
	return rules.FloatingMoves(g.board, g.hand, g.handFrom, attacks, g.enPassant, g.ruleOpts()...)
}

func (g *Game) commit(mv board.Move) {
	mover := g.board.At(mv.From)
	captured, ep := g.board.Apply(mv, g.enPassant)
	g.enPassant = ep
	g.turn = g.turn.Opposite()
	g.state = rules.Status(g.board, g.turn, g.enPassant, g.ruleOpts()...)

	g.logger.WithFields(log.Fields{
		"move":     mv.UCI(),
		"piece":    mover.Piece().String(),
		"side":     mover.Side().String(),
		"captured": captured.Piece().String(),
		"state":    g.state.String(),
	}).Debug("move committed")
}

func (g *Game) ruleOpts() []rules.Option {
	return []rules.Option{rules.WithPolicy(g.policy)}
}
