package tictactoe

import (
	"testing"

	"aigames/game"

	"github.com/stretchr/testify/require"
)

func mustRepr(t *testing.T, repr string) *Game {
	t.Helper()
	g, err := FromRepr(repr)
	require.NoError(t, err)
	return g
}

// walk visits every state reachable from g within plies moves (negative for
// no limit) with alternating turns, calling visit before expanding a state.
func walk(g *Game, player game.Player, plies int, visit func(*Game, game.Player)) {
	visit(g, player)
	if g.IsTerminal() || plies == 0 {
		return
	}
	for _, m := range g.AllowedMoves(player) {
		if err := g.Apply(player, m, true); err != nil {
			panic(err)
		}
		walk(g, player.Opposing(), plies-1, visit)
		g.Undo()
	}
}

func TestAllowedMovesPartitionBoard(t *testing.T) {
	states := 0
	walk(New(), game.Human, -1, func(g *Game, p game.Player) {
		states++
		seen := map[Move]bool{}
		for _, m := range g.AllowedMoves(p) {
			if g.cells[m.Row][m.Col] != 0 {
				t.Fatalf("allowed move %s is occupied in %s", m, g.Repr())
			}
			seen[m] = true
		}
		for r := 0; r < Size; r++ {
			for c := 0; c < Size; c++ {
				m := Move{Row: r, Col: c}
				if occupied := g.cells[r][c] != 0; occupied == seen[m] {
					t.Fatalf("cell %s must be either occupied or allowed in %s", m, g.Repr())
				}
			}
		}
	})
	require.Greater(t, states, 5000, "Should visit the whole game tree")
}

func TestApplyUndoRestores(t *testing.T) {
	t.Run("single apply/undo pairs across the tree", func(t *testing.T) {
		walk(New(), game.Human, 4, func(g *Game, p game.Player) {
			board, repr, terminal := g.Board(), g.Repr(), g.IsTerminal()
			for _, m := range g.AllowedMoves(p) {
				require.NoError(t, g.Apply(p, m, true))
				g.Undo()
				require.Equal(t, board, g.Board())
				require.Equal(t, repr, g.Repr())
				require.Equal(t, terminal, g.IsTerminal())
			}
		})
	})

	t.Run("consecutive applies undone in LIFO order", func(t *testing.T) {
		g := New()
		moves := []Move{{1, 1}, {0, 0}, {2, 2}, {0, 2}}
		player := game.Human
		reprs := []string{g.Repr()}
		for _, m := range moves {
			require.NoError(t, g.Apply(player, m, true))
			reprs = append(reprs, g.Repr())
			player = player.Opposing()
		}
		for i := len(moves) - 1; i >= 0; i-- {
			g.Undo()
			require.Equal(t, reprs[i], g.Repr())
		}
	})

	t.Run("unrecorded moves are not undone", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Apply(game.Human, Move{0, 0}, false))
		g.Undo()
		require.Equal(t, "X........", g.Repr(), "Undo with empty history should be a no-op")
	})
}

func TestApplyRejectsIllegalMoves(t *testing.T) {
	g := mustRepr(t, "X........")

	err := g.Apply(game.Cpu, Move{0, 0}, true)
	require.ErrorIs(t, err, game.ErrIllegalMove, "Occupied cell should be rejected")

	err = g.Apply(game.Cpu, Move{3, 0}, true)
	require.ErrorIs(t, err, game.ErrIllegalMove, "Off-board cell should be rejected")

	require.Equal(t, "X........", g.Repr(), "Rejected moves should not change the state")
}

func TestIsWinner(t *testing.T) {
	tests := []struct {
		name  string
		repr  string
		human bool
		cpu   bool
	}{
		{"empty", ".........", false, false},
		{"human row", "XXXOO....", true, false},
		{"cpu column", "OX.OX.O.X", false, true},
		{"human diagonal", "XO.OX...X", true, false},
		{"cpu anti-diagonal", "XXO.O.OX.", false, true},
		{"mixed line", "XOX......", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustRepr(t, tt.repr)
			require.Equal(t, tt.human, g.IsWinner(game.Human))
			require.Equal(t, tt.cpu, g.IsWinner(game.Cpu))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	require.False(t, New().IsTerminal())
	require.True(t, mustRepr(t, "XXXOO....").IsTerminal(), "A win is terminal")
	require.True(t, mustRepr(t, "XOXXOOOXX").IsTerminal(), "A full board is terminal")
}

func TestCanWin(t *testing.T) {
	g := mustRepr(t, "XX.OO....")
	before := g.Repr()

	won, err := g.CanWin(game.Human)
	require.NoError(t, err)
	require.True(t, won)

	won, err = g.CanWin(game.Cpu)
	require.NoError(t, err)
	require.True(t, won)

	require.Equal(t, before, g.Repr(), "CanWin should leave the board unchanged")

	won, err = New().CanWin(game.Human)
	require.NoError(t, err)
	require.False(t, won)
}

func TestScore(t *testing.T) {
	g := mustRepr(t, "XXXOO....")

	got, err := g.Score(game.Human, 2)
	require.NoError(t, err)
	require.Equal(t, WinScore/2, got, "Winner should score WinScore/depth")

	got, err = g.Score(game.Cpu, 2)
	require.NoError(t, err)
	require.Equal(t, -WinScore/2, got, "Loser should score -WinScore/depth")

	got, err = g.Score(game.Cpu, 0)
	require.NoError(t, err)
	require.Equal(t, -WinScore, got, "Depth 0 should be treated as depth 1")

	got, err = mustRepr(t, "XOXXOOOXX").Score(game.Human, 5)
	require.NoError(t, err)
	require.Equal(t, 0.0, got, "A drawn board scores 0")

	shallow, _ := g.Score(game.Human, 1)
	deep, _ := g.Score(game.Human, 4)
	require.Greater(t, shallow, deep, "Shallower wins should be worth more")
}

func TestReprAndBoard(t *testing.T) {
	g := New()
	require.Equal(t, ".........", g.Repr())

	require.NoError(t, g.Apply(game.Human, Move{0, 0}, false))
	require.NoError(t, g.Apply(game.Cpu, Move{2, 1}, true))
	require.Equal(t, "X......O.", g.Repr())
	require.Equal(t, game.Board{{"X", "", ""}, {"", "", ""}, {"", "O", ""}}, g.Board())

	g.Reset()
	require.Equal(t, ".........", g.Repr())
	g.Undo()
	require.Equal(t, ".........", g.Repr(), "Reset should clear the history")
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove(" 1, 2 ")
	require.NoError(t, err)
	require.Equal(t, Move{Row: 1, Col: 2}, m)
	require.Equal(t, "1,2", m.String())

	for _, bad := range []string{"", "1", "a,b", "1,2,3"} {
		_, err := ParseMove(bad)
		require.ErrorIs(t, err, game.ErrIllegalMove, "input %q", bad)
	}
}

func TestFromRepr(t *testing.T) {
	_, err := FromRepr("XX")
	require.Error(t, err)
	_, err = FromRepr("XXXXXXXXZ")
	require.Error(t, err)
}
