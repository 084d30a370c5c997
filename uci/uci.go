package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/apex/log"

	"github.com/daystram/arbiter/bench"
	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/engine"
	"github.com/daystram/arbiter/game"
	"github.com/daystram/arbiter/position"
	"github.com/daystram/arbiter/rules"
)

var (
	EngineName   = "Arbiter"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		positional:    false,
		policy:        rules.PolicyResolve,
		parallelPerft: true,
	}
)

type options struct {
	debug         bool
	positional    bool
	policy        rules.Policy
	parallelPerft bool
}

type Option func(*Interface)

func WithInput(r io.Reader) Option {
	return func(i *Interface) {
		i.in = r
	}
}

func WithOutput(w io.Writer) Option {
	return func(i *Interface) {
		i.out = w
	}
}

func WithLogger(l log.Interface) Option {
	return func(i *Interface) {
		i.logger = l
	}
}

type Interface struct {
	game    *game.Game
	engine  *engine.Engine
	options options

	in     io.Reader
	out    io.Writer
	outMu  sync.Mutex
	logger log.Interface

	engineMu      sync.Mutex
	engineRunning bool
	engineCancel  context.CancelFunc
	engineWG      sync.WaitGroup
}

func NewInterface(opts ...Option) *Interface {
	i := &Interface{
		options: defaultOptions,
		in:      os.Stdin,
		out:     os.Stdout,
		logger:  log.Log,
	}
	for _, f := range opts {
		f(i)
	}
	return i
}

// Run reads commands until quit or the end of input. A running search is
// waited for before returning.
func (i *Interface) Run() error {
	ctx := context.Background()
	i.reset(ctx)
	defer i.engineWG.Wait()

	scanner := bufio.NewScanner(i.in)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}

		switch args := strings.Fields(cmd); args[0] {
		case "uci":
			i.commandUCI(ctx)
		case "ucinewgame":
			i.reset(ctx)
		case "isready":
			i.commandReady(ctx)
		case "setoption":
			i.commandSetOption(ctx, args[1:])
		case "position":
			i.commandPosition(ctx, args[1:])
		case "d":
			i.commandDraw(ctx)
		case "legal":
			i.commandLegal(ctx, args[1:])
		case "attacks":
			i.commandAttacks(ctx)
		case "go":
			i.commandGo(ctx, args[1:])
		case "stop":
			i.commandStop(ctx)
		case "quit":
			return nil
		default:
			i.logger.WithField("command", cmd).Debug("unknown command")
		}
	}
	return scanner.Err()
}

func (i *Interface) commandUCI(_ context.Context) {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option name Debug type check default %v", defaultOptions.debug))
	i.println(fmt.Sprintf("option name Positional type check default %v", defaultOptions.positional))
	i.println(fmt.Sprintf("option name Policy type combo default %s var resolve var freeze", defaultOptions.policy))
	i.println(fmt.Sprintf("option name ParallelPerft type check default %v", defaultOptions.parallelPerft))
	i.println("uciok")
}

func (i *Interface) commandReady(_ context.Context) {
	if i.game != nil && i.engine != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(_ context.Context, args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return
	}
	switch name, valueStr := strings.ToLower(args[1]), args[3]; name {
	case "debug":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.debug = value
		i.newEngine()
	case "positional":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.positional = value
		i.newEngine()
	case "policy":
		switch valueStr {
		case rules.PolicyResolve.String():
			i.options.policy = rules.PolicyResolve
		case rules.PolicyFreeze.String():
			i.options.policy = rules.PolicyFreeze
		default:
			return
		}
		i.applyPolicy()
	case "parallelperft":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.parallelPerft = value
	}
}

func (i *Interface) commandPosition(_ context.Context, args []string) {
	if i.isEngineRunning() || len(args) == 0 {
		return
	}

	var fen string
	var mvs []string
	switch args[0] {
	case "fen":
		end := len(args)
		for j, a := range args {
			if a == "moves" {
				end = j
				break
			}
		}
		fen = strings.Join(args[1:end], " ")
		args = args[end:]
	case "startpos":
		fen = board.DefaultStartingPositionFEN
		args = args[1:]
	default:
		return
	}
	if len(args) > 0 && args[0] == "moves" {
		mvs = args[1:]
	}

	g, err := game.New(
		game.WithFEN(fen),
		game.WithLogger(i.logger),
		game.WithPolicy(i.options.policy),
	)
	if err != nil {
		i.logger.WithError(err).Warn("cannot set position")
		return
	}
	for _, s := range mvs {
		mv, err := board.ParseUCI(s)
		if err == nil {
			err = g.Move(mv)
		}
		if err != nil {
			i.logger.WithError(err).WithField("move", s).Warn("cannot play move")
			return
		}
	}
	i.game = g
}

// applyPolicy rebuilds the current game from its FEN under the configured
// policy, so that legal and go answer with it right away.
func (i *Interface) applyPolicy() {
	if i.game == nil || i.isEngineRunning() || i.game.Policy() == i.options.policy {
		return
	}
	g, err := game.New(
		game.WithFEN(i.game.FEN()),
		game.WithLogger(i.logger),
		game.WithPolicy(i.options.policy),
	)
	if err != nil {
		i.logger.WithError(err).Warn("cannot apply policy")
		return
	}
	i.game = g
}

func (i *Interface) commandDraw(_ context.Context) {
	i.println(i.game.Board().Draw(0))
	i.println(fmt.Sprintf("Fen: %s", i.game.FEN()))
	i.println(fmt.Sprintf("State: %s", i.game.State()))
}

func (i *Interface) commandLegal(_ context.Context, args []string) {
	if len(args) != 1 {
		return
	}
	pos, err := position.NewPosFromNotation(args[0])
	if err != nil {
		i.logger.WithError(err).Warn("cannot list legal moves")
		return
	}
	dsts := i.game.LegalMoves(pos)
	notations := make([]string, 0, len(dsts))
	for _, dst := range dsts {
		notations = append(notations, dst.Notation())
	}
	i.println(fmt.Sprintf("legal %s: %s", pos, strings.Join(notations, " ")))
}

func (i *Interface) commandAttacks(_ context.Context) {
	s := i.game.Turn().Opposite()
	attacks := i.game.Attacks(s)
	i.println(fmt.Sprintf("attacks %s: %d", s, attacks.BitCount()))
	i.println(attacks.Dump())
}

func (i *Interface) commandGo(ctx context.Context, args []string) {
	if len(args) > 0 {
		switch mode := args[0]; mode {
		case "perft":
			if len(args) != 2 {
				return
			}
			depth, err := strconv.Atoi(args[1])
			if err != nil || depth < 0 {
				return
			}

			out := make(chan string, 64)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for s := range out {
					i.println(s)
				}
			}()

			_, err = bench.Perft(depth, i.game.FEN(), i.options.parallelPerft, true, out)
			close(out)
			<-done
			if err != nil {
				i.logger.WithError(err).Warn("perft failed")
			}
			return

		default:
			return
		}
	}

	i.engineMu.Lock()
	defer i.engineMu.Unlock()
	if i.engineRunning {
		return
	}
	engineCtx, engineCancel := context.WithCancel(ctx)
	i.engineCancel = engineCancel
	i.engineRunning = true
	e, g := i.engine, i.game.Clone()

	i.engineWG.Add(1)
	go func() {
		defer i.engineWG.Done()
		defer engineCancel()

		bestMove, err := e.Search(engineCtx, g)
		if err != nil {
			if !errors.Is(err, engine.ErrNoMoves) && !errors.Is(err, context.Canceled) {
				i.logger.WithError(err).Error("search failed")
			}
			i.println("bestmove 0000")
		} else {
			i.println(fmt.Sprintf("bestmove %s", bestMove.UCI()))
		}

		i.engineMu.Lock()
		i.engineRunning = false
		i.engineMu.Unlock()
	}()
}

func (i *Interface) commandStop(_ context.Context) {
	i.engineMu.Lock()
	defer i.engineMu.Unlock()
	if i.engineRunning {
		i.engineCancel()
	}
}

func (i *Interface) reset(ctx context.Context) {
	i.commandStop(ctx)
	i.engineWG.Wait()
	i.commandPosition(ctx, []string{"startpos"})
	i.newEngine()
}

func (i *Interface) newEngine() {
	i.engine = engine.NewEngine(&engine.EngineConfig{
		Positional: i.options.positional,
		Debug:      i.options.debug,
		Logger:     i.println,
	})
}

func (i *Interface) isEngineRunning() bool {
	i.engineMu.Lock()
	defer i.engineMu.Unlock()
	return i.engineRunning
}

func (i *Interface) println(a ...any) {
	i.outMu.Lock()
	defer i.outMu.Unlock()
	fmt.Fprintln(i.out, a...)
}
