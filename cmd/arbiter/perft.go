package main

import (
	"fmt"
	"io"

	"github.com/apex/log"

	"github.com/daystram/arbiter/bench"
)

func perft(w io.Writer, depth int, fen string, parallel bool) error {
	log.WithFields(log.Fields{"depth": depth, "parallel": parallel}).Info("perft")

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			fmt.Fprintln(w, s)
		}
	}()

	_, err := bench.Perft(depth, fen, parallel, true, out)
	close(out)
	<-done
	return err
}
