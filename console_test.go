package main

import (
	"bytes"
	"strings"
	"testing"

	"aigames/config"
	"aigames/engine"
	"aigames/tictactoe"

	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	strategy, err := engine.NewStrategy[tictactoe.Move](config.Default().Strategy)
	require.NoError(t, err)
	session := engine.NewSession(tictactoe.New(), strategy)

	var out bytes.Buffer
	in := strings.NewReader("moves\nnonsense\n1,1\n1,1\nquit\n")
	require.NoError(t, newConsole(in, &out, session, tictactoe.ParseMove, tictactoe.Move.String).run())

	text := out.String()
	require.Contains(t, text, "0,0 0,1 0,2 1,0 1,1 1,2 2,0 2,1 2,2")
	require.Contains(t, text, "negamax plays")
	require.Contains(t, text, " X ", "Human mark should be printed in the centre")
	require.Equal(t, 2, session.Plies())
}
