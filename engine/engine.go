package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/game"
	"github.com/daystram/arbiter/rules"
)

const (
	ScoreInfinite int32 = math.MaxInt32

	scoreCheckmate int32 = 1 << 20
)

var ErrNoMoves = errors.New("no legal moves")

func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

type EngineConfig struct {
	// Positional adds the piece-square bonus to the material score.
	Positional bool
	Debug      bool
	Logger     func(...any)
}

// Engine picks a move one ply deep. Candidates are scored on the position
// they leave behind; a mate wins outright and ties go to the earliest
// candidate, origins in ascending cell order.
type Engine struct {
	positional bool
	debug      bool
	nodes      uint32
	logger     func(...any)
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = DefaultLogger
	}

	return &Engine{
		positional: cfg.Positional,
		debug:      cfg.Debug,
		logger:     cfg.Logger,
	}
}

// Search returns the best move for the side to move in g. g is not modified.
// Mates are judged under the policy of g.
// When ctx is done before every candidate was scored, the best move so far
// is returned.
func (e *Engine) Search(ctx context.Context, g *game.Game) (board.Move, error) {
	mvs := g.Moves()
	if len(mvs) == 0 {
		return board.Move{}, fmt.Errorf("%w: %s", ErrNoMoves, g.State())
	}

	b, s, ep := g.Board(), g.Turn(), g.EnPassant()
	policy := rules.WithPolicy(g.Policy())
	var bestMove board.Move
	bestScore := -ScoreInfinite
	e.nodes = 0
	startTime := time.Now()
	for _, mv := range mvs {
		if ctx.Err() != nil {
			break
		}
		e.nodes++
		bb := *b
		_, nextEP := bb.Apply(mv, ep)
		score := e.evaluate(&bb, s)
		if rules.Status(&bb, s.Opposite(), nextEP, policy).IsCheckmate() {
			score = scoreCheckmate
		}
		if score > bestScore {
			bestMove, bestScore = mv, score
		}
	}
	elapsed := time.Since(startTime)

	if bestMove.IsNull() {
		return board.Move{}, ctx.Err()
	}

	if e.debug {
		e.logger(message.NewPrinter(language.English).
			Sprintf("depth:1 [%s] nodes:%d (%.0fn/s) t:%s\n    %s",
				formatScoreDebug(bestScore), e.nodes, float64(e.nodes)/((elapsed + 1).Seconds()), elapsed, bestMove))
	} else {
		e.logger(fmt.Sprintf("info depth 1 score %s time %d nodes %d pv %s",
			formatScoreUCI(bestScore), elapsed.Milliseconds(), e.nodes, bestMove.UCI()))
	}
	return bestMove, nil
}

func (e *Engine) Nodes() uint32 {
	return e.nodes
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}

func formatScoreDebug(s int32) string {
	if s == scoreCheckmate {
		return "#+1"
	}
	if s > 0 {
		return fmt.Sprintf("+%.2f", float64(s)/100)
	}
	if s < 0 {
		return fmt.Sprintf("-%.2f", float64(abs(s))/100)
	}
	return "0"
}

func formatScoreUCI(s int32) string {
	if s == scoreCheckmate {
		return "mate 1"
	}
	return fmt.Sprintf("cp %d", s)
}
