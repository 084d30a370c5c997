package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

func mustFEN(t *testing.T, fen string) (*board.Board, board.Side, position.Pos) {
	t.Helper()
	b, s, ep, err := board.ParseFEN(fen)
	require.NoError(t, err)
	return b, s, ep
}

func sq(t *testing.T, n string) position.Pos {
	t.Helper()
	p, err := position.NewPosFromNotation(n)
	require.NoError(t, err)
	return p
}

func sqs(t *testing.T, ns ...string) []position.Pos {
	t.Helper()
	ps := make([]position.Pos, 0, len(ns))
	for _, n := range ns {
		ps = append(ps, sq(t, n))
	}
	return ps
}

func abs(p position.Pos) position.Pos {
	if p < 0 {
		return -p
	}
	return p
}
