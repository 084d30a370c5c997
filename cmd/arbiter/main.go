package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/uci"
)

const (
	exitOK  = 0
	exitErr = 1

	envPrefix = "ARBITER_"
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")
	debug   = flag.Bool("debug", false, "log at debug level")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw every legal move in movegen mode")
	movegenSVG  = flag.String("movegen.svg", "", "write the board as SVG to this file in movegen mode")

	perftDepth    = flag.Int("perft", 0, "run perft to this depth")
	perftParallel = flag.Bool("perft.parallel", true, "search root moves in parallel in perft mode")

	stepRun   = flag.Bool("step", false, "run step mode")
	stepMax   = flag.Int("step.max", 500, "maximum number of plies in step mode")
	stepSeed  = flag.Int64("step.seed", 1, "random seed in step mode")
	stepDelay = flag.Duration("step.delay", 0, "pause between plies in step mode")

	searchRun        = flag.Bool("search", false, "run search mode")
	searchSteps      = flag.Int("search.steps", 50, "number of full moves in search mode")
	searchPositional = flag.Bool("search.positional", false, "add piece-square bonus in search mode")
)

func main() {
	flag.Parse()
	log.SetHandler(cli.New(os.Stderr))

	if err := applyEnv(flag.CommandLine, os.LookupEnv); err != nil {
		log.WithError(err).Error("invalid environment")
		os.Exit(exitErr)
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	if *profile {
		runProfiler()
	}

	err := realMain(flag.Args())
	if err != nil {
		log.WithError(err).Error("failed")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

// applyEnv fills every flag not given on the command line from its
// ARBITER_ variable, e.g. ARBITER_MOVEGEN_DRAW for -movegen.draw.
func applyEnv(fs *flag.FlagSet, lookup func(string) (string, bool)) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if set[f.Name] || err != nil {
			return
		}
		v, ok := lookup(envName(f.Name))
		if !ok {
			return
		}
		if e := fs.Set(f.Name, v); e != nil {
			err = fmt.Errorf("%s: %w", envName(f.Name), e)
		}
	})
	return err
}

func envName(flagName string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flagName, ".", "_"))
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Infof("starting pprof endpoint: http://%s/debug/pprof", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	if *movegenRun {
		return movegen(os.Stdout, fen, *movegenDraw, *movegenSVG)
	}
	if *perftDepth > 0 {
		return perft(os.Stdout, *perftDepth, fen, *perftParallel)
	}
	if *stepRun {
		return step(os.Stdout, fen, *stepMax, *stepSeed, *stepDelay)
	}
	if *searchRun {
		return search(context.Background(), os.Stdout, fen, *searchSteps, *searchPositional)
	}

	return uci.NewInterface().Run()
}
