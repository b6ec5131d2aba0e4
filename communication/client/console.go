package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"battleship/engine"
	"battleship/experiments/metrics"
	"battleship/gamemaster"

	"github.com/rs/zerolog/log"
)

// ErrQuit is returned when the player leaves before the game is decided.
var ErrQuit = errors.New("player quit")

// Console is the line-based fallback for terminals without mouse support or boards
// larger than the terminal ui. It reads cells like "C5" line by line.
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	terminal *Terminal
}

func NewConsole(in io.Reader, out io.Writer, size int) *Console {
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		terminal: NewTerminal(size),
	}
}

func (c *Console) Terminal() *Terminal {
	return c.terminal
}

// Play lays out a random fleet if setup is incomplete, then runs the game to the end.
func (c *Console) Play(ctx context.Context, gm *gamemaster.GameMaster, collector metrics.Collector) (engine.Status, error) {
	if !gm.Ready() {
		if err := gm.Randomize(); err != nil {
			return engine.InProgress, err
		}
	}
	e, err := gm.Start(c.terminal, collector)
	if err != nil {
		return engine.InProgress, err
	}
	return c.Run(ctx, e)
}

// Run reads shots until the game is over, the input ends or the player types "quit".
func (c *Console) Run(ctx context.Context, e *engine.Engine) (engine.Status, error) {
	fmt.Fprintln(c.out, "Your shot (e.g. C5, or quit):")

	for c.in.Scan() {
		line := strings.TrimSpace(c.in.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return e.Status(), ErrQuit
		}

		status, err := c.terminal.Click(ctx, e, line)
		fmt.Fprintln(c.out, c.terminal.Message())
		switch {
		case errors.Is(err, engine.ErrInvalidCoordinate), errors.Is(err, engine.ErrRepeatedShot):
			continue
		case err != nil:
			return status, err
		}

		if status != engine.InProgress {
			return status, nil
		}
	}

	if err := c.in.Err(); err != nil {
		log.Error().Msgf("failed to read input: %v", err)
		return e.Status(), err
	}
	return e.Status(), ErrQuit
}
