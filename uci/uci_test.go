package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daystram/arbiter/board"
)

func run(t *testing.T, h log.Handler, cmds ...string) string {
	t.Helper()
	var out bytes.Buffer
	i := NewInterface(
		WithInput(strings.NewReader(strings.Join(cmds, "\n")+"\n")),
		WithOutput(&out),
		WithLogger(&log.Logger{Handler: h, Level: log.DebugLevel}),
	)
	require.NoError(t, i.Run())
	return out.String()
}

func TestInterface(t *testing.T) {
	color.NoColor = true
	tests := []struct {
		name    string
		cmds    []string
		want    []string
		notWant []string
	}{
		{
			name: "handshake",
			cmds: []string{"uci", "isready", "quit"},
			want: []string{"id name Arbiter", "option name Policy type combo default resolve", "uciok", "readyok"},
		},
		{
			name: "legal after moves",
			cmds: []string{"position startpos moves e2e4 e7e5", "legal g1", "quit"},
			want: []string{"legal g1: f3 h3 e2\n"},
		},
		{
			name: "legal of the side not to move",
			cmds: []string{"legal e7", "quit"},
			want: []string{"legal e7: \n"},
		},
		{
			name: "search captures",
			cmds: []string{"position fen 4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1", "go", "quit"},
			want: []string{"info depth 1 score cp 500", "bestmove d1d5"},
		},
		{
			name: "search without moves",
			cmds: []string{"position fen R6k/6pp/8/8/8/8/8/K7 b - - 0 1", "go", "quit"},
			want: []string{"bestmove 0000"},
		},
		{
			name: "perft",
			cmds: []string{"go perft 2", "quit"},
			want: []string{"e2e4: 20", "d=2 nodes=400 "},
		},
		{
			name: "sequential perft",
			cmds: []string{"setoption name ParallelPerft value false", "position startpos moves e2e4", "go perft 1", "quit"},
			want: []string{"a7a6: 1", "d=1 nodes=20 "},
		},
		{
			name: "draw",
			cmds: []string{"position startpos moves e2e4", "d", "quit"},
			want: []string{"Fen: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - e3 0 1", "State: StateRunning"},
		},
		{
			name: "attacks",
			cmds: []string{"attacks", "quit"},
			want: []string{"attacks Black: 22\n"},
		},
		{
			name: "invalid position keeps the previous one",
			cmds: []string{"position startpos moves e2e4", "position fen 8/8/8", "position startpos moves e2e5", "d", "quit"},
			want: []string{"Fen: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - e3 0 1"},
		},
		{
			name: "new game resets the position",
			cmds: []string{"position startpos moves e2e4", "ucinewgame", "d", "quit"},
			want: []string{"Fen: " + board.DefaultStartingPositionFEN},
		},
		{
			name:    "freeze policy",
			cmds:    []string{"setoption name Policy value freeze", "position fen 4r2k/8/8/1B6/R7/8/7P/4K1N1 w - - 0 1", "legal b5", "d", "go", "quit"},
			want:    []string{"legal b5: \n", "State: StateCheckmateWhite", "bestmove 0000"},
			notWant: []string{"legal b5: e"},
		},
		{
			name: "policy applies to the current position",
			cmds: []string{"position fen 4r2k/8/8/1B6/R7/8/7P/4K1N1 w - - 0 1", "legal b5", "setoption name Policy value freeze", "legal b5", "d", "setoption name Policy value resolve", "legal a4", "quit"},
			want: []string{"legal b5: e8 e2\nlegal b5: \n", "State: StateCheckmateWhite", "legal a4: e4\n"},
		},
		{
			name: "resolve policy",
			cmds: []string{"position fen 4r2k/8/8/1B6/R7/8/7P/4K1N1 w - - 0 1", "legal b5", "quit"},
			want: []string{"legal b5: e8 e2\n"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, memory.New(), tt.cmds...)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, got, w)
			}
		})
	}
}

func TestInterfaceLogsRejectedInput(t *testing.T) {
	h := memory.New()
	run(t, h, "position startpos moves e2e5", "bogus", "quit")

	var messages []string
	for _, e := range h.Entries {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "cannot play move")
	assert.Contains(t, messages, "unknown command")
}

func TestInterfaceEndOfInput(t *testing.T) {
	got := run(t, memory.New(), "isready")
	assert.Equal(t, "readyok\n", got)
}
