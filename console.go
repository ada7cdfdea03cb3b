package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"aigames/engine"
	"aigames/game"

	"github.com/pkg/errors"
)

// console plays a session over a line-based terminal.
type console[M comparable] struct {
	in      *bufio.Scanner
	out     io.Writer
	session *engine.Session[M]
	parse   func(string) (M, error)
	format  func(M) string
}

func newConsole[M comparable](in io.Reader, out io.Writer, s *engine.Session[M], parse func(string) (M, error), format func(M) string) *console[M] {
	return &console[M]{in: bufio.NewScanner(in), out: out, session: s, parse: parse, format: format}
}

func (c *console[M]) run() error {
	fmt.Fprintln(c.out, "commands: <move>, moves, reset, quit")
	c.printBoard(c.session.Result().Board)
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "reset":
			c.printBoard(c.session.Reset())
			continue
		case "moves":
			var moves []string
			for _, m := range c.session.Game().AllowedMoves(game.Human) {
				moves = append(moves, c.format(m))
			}
			fmt.Fprintln(c.out, strings.Join(moves, " "))
			continue
		}

		if c.session.Status().Terminal() {
			fmt.Fprintln(c.out, "game over, type reset to play again")
			continue
		}
		move, err := c.parse(line)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		result, err := c.session.Play(move)
		if errors.Is(err, game.ErrIllegalMove) {
			fmt.Fprintln(c.out, err)
			continue
		}
		if err != nil {
			return err
		}
		if reply, ok := c.session.LastCpuMove(); ok {
			fmt.Fprintf(c.out, "%s plays %s\n", c.session.Strategy().Name(), c.format(reply))
		}
		c.printBoard(result.Board)
		if result.Message != "" {
			fmt.Fprintln(c.out, result.Message)
		}
	}
}

func (c *console[M]) printBoard(b game.Board) {
	for _, row := range b {
		cells := make([]string, len(row))
		for i, cell := range row {
			if cell == "" {
				cell = "."
			}
			cells[i] = cell
		}
		fmt.Fprintln(c.out, strings.Join(cells, " "))
	}
}
