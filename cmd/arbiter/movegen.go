package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apex/log"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/game"
)

func movegen(w io.Writer, fen string, draw bool, svgPath string) error {
	log.WithField("fen", fen).Info("movegen")
	g, err := game.New(game.WithFEN(fen))
	if err != nil {
		return err
	}
	b := g.Board()
	fmt.Fprintln(w, "to move:", g.Turn())
	fmt.Fprintln(w, b.Dump())
	fmt.Fprintln(w, b.Draw(g.Attacks(g.Turn().Opposite())))
	fmt.Fprintln(w, g.State())
	mvs := g.Moves()
	dumpMoves(w, b, mvs)

	if svgPath != "" {
		if err := writeSVG(svgPath, b); err != nil {
			return err
		}
		log.WithField("path", svgPath).Info("svg written")
	}

	if draw {
		for _, mv := range mvs {
			gg := g.Clone()
			if err := gg.Move(mv); err != nil {
				return err
			}
			fmt.Fprintln(w, mv)
			fmt.Fprintln(w, gg.Board().Draw(board.NewBitmap(mv.From, mv.To)))
			fmt.Fprintln(w, gg.FEN())
		}
	}
	return nil
}

func dumpMoves(w io.Writer, b *board.Board, mvs []board.Move) {
	for i, mv := range mvs {
		c := b.At(mv.From)
		fmt.Fprintf(w, "option %*d: [%s] %s %s %s => %s (cap=%v) (pro=%s)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), c.Side(), c.Piece(), mv.From, mv.To, !b.At(mv.To).IsEmpty(), mv.Promote)
	}
}

func writeSVG(path string, b *board.Board) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	board.WriteSVG(f, b, 0)
	return f.Close()
}
