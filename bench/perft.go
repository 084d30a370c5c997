package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
	"github.com/daystram/arbiter/rules"
)

// Result holds the leaf statistics of a perft run. Captures, EnPassant,
// Promotions and Checks count the moves of the last ply.
type Result struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Promotions uint64
	Checks     uint64
	Elapsed    time.Duration
}

// Perft walks the legal move tree of fen to depth. With verbose, the node
// count under every root move is sent to out, followed by a summary line.
// out may be nil.
func Perft(depth int, fen string, parallel, verbose bool, out chan string) (Result, error) {
	b, turn, ep, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return Result{}, err
	}

	var run perftFunc
	if parallel {
		run = runPerftParallel
	} else {
		run = runPerft
	}

	var c counters
	start := time.Now()
	run(node{board: *b, turn: turn, enPassant: ep}, depth, true, verbose, out, &c)
	elapsed := time.Since(start)

	res := c.result(elapsed)
	if out != nil {
		out <- message.NewPrinter(language.English).
			Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d pro=%d chk=%d (%.3fs elapsed)",
				depth, res.Nodes, int(float64(res.Nodes)/(elapsed+1).Seconds()),
				res.Captures, res.EnPassant, res.Promotions, res.Checks, elapsed.Seconds())
	}
	return res, nil
}

type node struct {
	board     board.Board
	turn      board.Side
	enPassant position.Pos
}

func (n *node) moves() []board.Move {
	return rules.AllLegalMoves(&n.board, n.turn, n.enPassant).Moves(&n.board)
}

func (n *node) play(mv board.Move) (node, board.Cell) {
	child := node{board: n.board, turn: n.turn.Opposite()}
	captured, ep := child.board.Apply(mv, n.enPassant)
	child.enPassant = ep
	return child, captured
}

type counters struct {
	nodes, cap, enp, pro, chk uint64
}

// tally records a move of the last ply.
func (c *counters) tally(parent *node, mv board.Move, child *node, captured board.Cell) {
	c.nodes++
	if !captured.IsEmpty() {
		c.cap++
		if mv.To == parent.enPassant && parent.board.At(mv.From).Piece() == board.PiecePawn {
			c.enp++
		}
	}
	if mv.Promote != board.PieceUnknown {
		c.pro++
	}
	if rules.IsKingChecked(&child.board, child.turn) {
		c.chk++
	}
}

func (c *counters) merge(o *counters) {
	atomic.AddUint64(&c.nodes, o.nodes)
	atomic.AddUint64(&c.cap, o.cap)
	atomic.AddUint64(&c.enp, o.enp)
	atomic.AddUint64(&c.pro, o.pro)
	atomic.AddUint64(&c.chk, o.chk)
}

func (c *counters) result(elapsed time.Duration) Result {
	return Result{
		Nodes:      c.nodes,
		Captures:   c.cap,
		EnPassant:  c.enp,
		Promotions: c.pro,
		Checks:     c.chk,
		Elapsed:    elapsed,
	}
}

type perftFunc func(n node, d int, root, verbose bool, out chan string, c *counters) uint64

func runPerft(n node, d int, root, verbose bool, out chan string, c *counters) uint64 {
	if d == 0 {
		c.nodes++
		return 1
	}

	var sum uint64
	for _, mv := range n.moves() {
		child, captured := n.play(mv)
		var count uint64 = 1
		if d == 1 {
			c.tally(&n, mv, &child, captured)
		} else {
			count = runPerft(child, d-1, false, verbose, out, c)
		}
		if verbose && root && out != nil {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), count)
		}
		sum += count
	}
	return sum
}

// runPerftParallel searches every root move on its own goroutine.
func runPerftParallel(n node, d int, root, verbose bool, out chan string, c *counters) uint64 {
	if d <= 1 {
		return runPerft(n, d, root, verbose, out, c)
	}

	var sum uint64
	var wg sync.WaitGroup
	for _, mv := range n.moves() {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local counters
			child, _ := n.play(mv)
			count := runPerft(child, d-1, false, false, nil, &local)
			c.merge(&local)
			if verbose && root && out != nil {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), count)
			}
			atomic.AddUint64(&sum, count)
		}()
	}
	wg.Wait()
	return sum
}
