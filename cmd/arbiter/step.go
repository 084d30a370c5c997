package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/apex/log"

	"github.com/daystram/arbiter/game"
)

// step plays random legal moves from fen until the game ends or maxSteps
// plies were played.
func step(w io.Writer, fen string, maxSteps int, seed int64, delay time.Duration) error {
	log.WithFields(log.Fields{"fen": fen, "seed": seed}).Info("step")
	var (
		timesGenerateMoves []time.Duration
		timesMove          []time.Duration
	)
	g, err := game.New(game.WithFEN(fen))
	if err != nil {
		return err
	}
	r := rand.New(rand.NewSource(seed))

	for ply := 0; ply < maxSteps && g.State().IsRunning(); ply++ {
		t1 := time.Now()
		mvs := g.Moves()
		timesGenerateMoves = append(timesGenerateMoves, time.Since(t1))
		if len(mvs) == 0 {
			return fmt.Errorf("unexpected move exhaustion: state=%s", g.State())
		}
		mv := mvs[r.Intn(len(mvs))]
		turn := g.Turn()

		t1 = time.Now()
		if err := g.Move(mv); err != nil {
			return err
		}
		timesMove = append(timesMove, time.Since(t1))

		fmt.Fprintf(w, "\n===== [#%d] %s: %s\n", ply/2+1, turn, mv)
		fmt.Fprintln(w, g.Board().Dump())
		fmt.Fprintln(w, g.FEN())
		if delay > 0 {
			<-time.After(delay)
		}
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, g.State())
	log.WithFields(log.Fields{
		"state": g.State().String(),
		"genmv": avg(timesGenerateMoves).String(),
		"move":  avg(timesMove).String(),
	}).Info("step done")
	return nil
}
