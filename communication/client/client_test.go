package client

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"battleship/communication"
	"battleship/engine"
	"battleship/game"
	"battleship/gamemaster"

	gui "github.com/grupawp/warships-gui/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestTerminal(t *testing.T) {
	c5 := game.Coordinate{Col: 2, Row: 4}

	t.Run("maps cell views to board states", func(t *testing.T) {
		term := NewTerminal(10)
		term.Apply(
			communication.Event{Board: communication.HumanSide, Cell: game.Coordinate{}, View: communication.ViewShip},
			communication.Event{Board: communication.BotSide, Cell: c5, View: communication.ViewHit},
			communication.Event{Board: communication.BotSide, Cell: c5, View: communication.ViewLast},
			communication.Event{Board: communication.BotSide, Cell: game.Coordinate{Col: 3, Row: 4}, View: communication.ViewDestroyed},
			communication.Event{Board: communication.BotSide, Cell: game.Coordinate{Col: 4, Row: 4}, View: communication.ViewMissAuto},
			communication.Event{Board: communication.HumanSide, Cell: game.Coordinate{Col: 9, Row: 9}, View: communication.ViewMiss},
			communication.Event{Board: communication.BotSide, Cell: game.Coordinate{Col: 10, Row: 0}, View: communication.ViewMiss},
		)

		require.Equal(t, communication.ViewShip, term.View(communication.HumanSide, game.Coordinate{}))
		require.Equal(t, gui.Ship, term.State(communication.HumanSide, game.Coordinate{}))
		require.Equal(t, communication.ViewHit, term.View(communication.BotSide, c5), "Last marker should not replace the cell")
		require.Equal(t, gui.Hit, term.State(communication.BotSide, c5))
		require.Equal(t, gui.Hit, term.State(communication.BotSide, game.Coordinate{Col: 3, Row: 4}))
		require.Equal(t, gui.Miss, term.State(communication.BotSide, game.Coordinate{Col: 4, Row: 4}))
		require.Equal(t, gui.Miss, term.State(communication.HumanSide, game.Coordinate{Col: 9, Row: 9}))
		require.Equal(t, gui.Empty, term.State(communication.HumanSide, c5))
	})

	t.Run("cells off the board read as empty", func(t *testing.T) {
		term := NewTerminal(10)
		for _, c := range []game.Coordinate{{Col: -1, Row: 0}, {Col: 0, Row: -1}, {Col: 10, Row: 0}, {Col: 0, Row: 10}, {Col: 25, Row: 25}} {
			require.Equal(t, communication.ViewEmpty, term.View(communication.BotSide, c), c.String())
			require.Equal(t, gui.Empty, term.State(communication.BotSide, c), c.String())
		}
		require.Equal(t, communication.ViewEmpty, term.View(communication.Side("nobody"), game.Coordinate{}))
	})

	t.Run("boards larger than the ui keep their views", func(t *testing.T) {
		term := NewTerminal(12)
		far := game.Coordinate{Col: 11, Row: 11}
		term.Apply(communication.Event{Board: communication.BotSide, Cell: far, View: communication.ViewMiss})

		require.Equal(t, communication.ViewMiss, term.View(communication.BotSide, far))
		require.Equal(t, gui.Empty, term.State(communication.BotSide, far))
		_, err := term.Play(context.Background(), newGameMaster(), nil)
		require.ErrorIs(t, err, ErrBoardTooLarge)
	})

	t.Run("a click fires at the clicked cell", func(t *testing.T) {
		term := NewTerminal(10)
		gm := newGameMaster()
		require.NoError(t, gm.Randomize())
		e, err := gm.Start(term, nil)
		require.NoError(t, err)
		target := e.Bot().Board().Occupied()[0]

		status, err := term.Click(context.Background(), e, target.String())

		require.NoError(t, err)
		require.Equal(t, engine.InProgress, status)
		require.Equal(t, gui.Hit, term.State(communication.BotSide, target))
		require.Contains(t, term.Message(), target.String())
		require.Equal(t, gui.Ship, term.State(communication.HumanSide, e.Human().Board().Occupied()[0]))
	})

	t.Run("unreadable clicks are rejected", func(t *testing.T) {
		term := NewTerminal(10)
		gm := newGameMaster()
		require.NoError(t, gm.Randomize())
		e, err := gm.Start(term, nil)
		require.NoError(t, err)

		_, err = term.Click(context.Background(), e, "hello")
		require.ErrorIs(t, err, engine.ErrInvalidCoordinate)
		require.Contains(t, term.Message(), "invalid cell")

		_, err = term.Click(context.Background(), e, "Z99")
		require.ErrorIs(t, err, engine.ErrInvalidCoordinate)
		require.Contains(t, term.Message(), "cannot shoot Z99")
	})
}

func newGameMaster() *gamemaster.GameMaster {
	return gamemaster.NewGameMaster(game.NewStandardRules(),
		gamemaster.WithRand(rand.New(rand.NewSource(21))),
		gamemaster.WithDelay(0, 0),
	)
}

func TestConsole(t *testing.T) {
	t.Run("plays until the human wins", func(t *testing.T) {
		var input, out bytes.Buffer
		console := NewConsole(&input, &out, 10)
		gm := newGameMaster()
		require.NoError(t, gm.Randomize())
		e, err := gm.Start(console.Terminal(), nil)
		require.NoError(t, err)

		input.WriteString("hello\nZ99\n\n")
		for _, c := range e.Bot().Board().Occupied() {
			input.WriteString(c.String() + "\n")
		}

		status, err := console.Run(context.Background(), e)

		require.NoError(t, err)
		require.Equal(t, engine.HumanWin, status)
		require.Contains(t, out.String(), "invalid cell")
		require.Contains(t, out.String(), "cannot shoot Z99")
		require.Contains(t, out.String(), "You win!")
	})

	t.Run("quit ends the session", func(t *testing.T) {
		var out bytes.Buffer
		console := NewConsole(strings.NewReader("quit\n"), &out, 10)

		status, err := console.Play(context.Background(), newGameMaster(), nil)

		require.ErrorIs(t, err, ErrQuit)
		require.Equal(t, engine.InProgress, status)
	})
}
