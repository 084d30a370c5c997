package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/engine"
	"github.com/daystram/arbiter/game"
)

// search lets the engine play the side to move of fen against random moves
// for at most steps full moves.
func search(ctx context.Context, w io.Writer, fen string, steps int, positional bool) error {
	r := rand.New(rand.NewSource(time.Now().Unix()))
	g, err := game.New(game.WithFEN(fen))
	if err != nil {
		return err
	}
	e := engine.NewEngine(&engine.EngineConfig{
		Positional: positional,
		Logger: func(a ...any) {
			log.Debug(fmt.Sprint(a...))
		},
	})
	fmt.Fprintln(w, g.Board().Dump())
	fmt.Fprintln(w, g.FEN())

	playingSide := g.Turn()
	getMove := func(g *game.Game) (board.Move, error) {
		if g.Turn() == playingSide {
			return e.Search(ctx, g)
		}
		mvs := g.Moves()
		return mvs[r.Intn(len(mvs))], nil
	}

	var history []board.Move
	for ply := 0; ply < 2*steps && g.State().IsRunning(); ply++ {
		turn := g.Turn()
		mv, err := getMove(g)
		if err != nil {
			return err
		}
		if err := g.Move(mv); err != nil {
			return err
		}
		history = append(history, mv)

		fmt.Fprintf(w, "\n>>> %s: %s\n", turn, mv)
		fmt.Fprintln(w, g.FEN())
		fmt.Fprintln(w, g.Board().Dump())
	}
	log.WithField("state", g.State().String()).Info("game ended")
	fmt.Fprintln(w, g.FEN())
	fmt.Fprintln(w, dumpHistory(history, playingSide))

	return nil
}

func dumpHistory(mvs []board.Move, first board.Side) string {
	builder := strings.Builder{}
	white := first == board.SideWhite
	if !white {
		_, _ = builder.WriteString("1... ")
	}
	n := 1
	for _, mv := range mvs {
		if white {
			_, _ = builder.WriteString(fmt.Sprintf("%d.", n))
		} else {
			n++
		}
		_, _ = builder.WriteString(mv.UCI())
		_, _ = builder.WriteRune(' ')
		white = !white
	}
	return strings.TrimSpace(builder.String())
}
