package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"battleship/communication"
	"battleship/engine"
	"battleship/experiments/metrics"
	"battleship/game"
	"battleship/gamemaster"

	gui "github.com/grupawp/warships-gui/v2"
)

// guiSize is the fixed width and height of a warships-gui board.
const guiSize = 10

var ErrBoardTooLarge = fmt.Errorf("board does not fit the %dx%d terminal board", guiSize, guiSize)

var states = map[communication.CellView]gui.State{
	communication.ViewEmpty:     gui.Empty,
	communication.ViewShip:      gui.Ship,
	communication.ViewHit:       gui.Hit,
	communication.ViewDestroyed: gui.Hit,
	communication.ViewMiss:      gui.Miss,
	communication.ViewMissAuto:  gui.Miss,
	communication.ViewAllowed:   gui.Ship,
	communication.ViewForbidden: gui.Hit,
}

// Terminal keeps both boards as warships-gui states. Once opened it draws them,
// the human's board on the left, and fires at whatever cell is clicked on the bot's board.
type Terminal struct {
	mu      sync.Mutex
	size    int
	views   map[communication.Side][][]communication.CellView
	states  map[communication.Side]*[guiSize][guiSize]gui.State
	last    map[communication.Side]game.Coordinate
	winner  communication.Side
	message string

	ui     *gui.GUI
	boards map[communication.Side]*gui.Board
	status *gui.Text
}

func NewTerminal(size int) *Terminal {
	t := &Terminal{
		size:   size,
		views:  make(map[communication.Side][][]communication.CellView),
		states: make(map[communication.Side]*[guiSize][guiSize]gui.State),
		last:   make(map[communication.Side]game.Coordinate),
	}
	for _, side := range []communication.Side{communication.HumanSide, communication.BotSide} {
		board := make([][]communication.CellView, size)
		for row := range board {
			board[row] = make([]communication.CellView, size)
			for col := range board[row] {
				board[row][col] = communication.ViewEmpty
			}
		}
		t.views[side] = board

		grid := &[guiSize][guiSize]gui.State{}
		for x := range grid {
			for y := range grid[x] {
				grid[x][y] = gui.Empty
			}
		}
		t.states[side] = grid
	}
	return t
}

func (t *Terminal) Apply(events ...communication.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := make(map[communication.Side]bool)
	for _, ev := range events {
		if !t.onBoard(ev.Board, ev.Cell) {
			continue
		}
		if ev.View == communication.ViewLast {
			t.last[ev.Board] = ev.Cell
			continue
		}
		t.views[ev.Board][ev.Cell.Row][ev.Cell.Col] = ev.View
		if ev.Cell.Col < guiSize && ev.Cell.Row < guiSize {
			// warships-gui grids are indexed by column first.
			t.states[ev.Board][ev.Cell.Col][ev.Cell.Row] = states[ev.View]
			changed[ev.Board] = true
		}
	}

	if t.boards == nil {
		return
	}
	for side := range changed {
		t.boards[side].SetStates(*t.states[side])
	}
}

func (t *Terminal) GameOver(winner communication.Side) {
	t.mu.Lock()
	t.winner = winner
	t.mu.Unlock()

	if winner == communication.HumanSide {
		t.say("You win!")
	} else {
		t.say("The bot wins.")
	}
}

// View returns what is currently shown at c. Cells off the board are empty.
func (t *Terminal) View(side communication.Side, c game.Coordinate) communication.CellView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view(side, c)
}

// State returns the warships-gui state drawn at c.
func (t *Terminal) State(side communication.Side, c game.Coordinate) gui.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.onBoard(side, c) || c.Col >= guiSize || c.Row >= guiSize {
		return gui.Empty
	}
	return t.states[side][c.Col][c.Row]
}

func (t *Terminal) Winner() communication.Side {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.winner
}

// Message is the latest line shown under the boards.
func (t *Terminal) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message
}

// Click fires at a cell named the way warships-gui reports clicks, e.g. "C5".
func (t *Terminal) Click(ctx context.Context, e *engine.Engine, coord string) (engine.Status, error) {
	c, err := game.ParseCoordinate(coord)
	if err != nil {
		t.say(fmt.Sprintf("invalid cell: %v", err))
		return e.Status(), fmt.Errorf("%w: %v", engine.ErrInvalidCoordinate, err)
	}
	return t.Shoot(ctx, e, c)
}

// Shoot fires the human's shot, waits for the bot's reply and reports both.
func (t *Terminal) Shoot(ctx context.Context, e *engine.Engine, c game.Coordinate) (engine.Status, error) {
	t.mu.Lock()
	delete(t.last, communication.HumanSide)
	t.mu.Unlock()

	status, err := e.Shoot(ctx, c)
	switch {
	case errors.Is(err, engine.ErrInvalidCoordinate), errors.Is(err, engine.ErrRepeatedShot):
		t.say(fmt.Sprintf("cannot shoot %s: %v", c, err))
		return status, err
	case err != nil:
		return status, err
	}
	t.say(t.report(c, status))
	return status, nil
}

// Play lays out a random fleet if setup is incomplete, then runs the game in the terminal ui.
func (t *Terminal) Play(ctx context.Context, gm *gamemaster.GameMaster, collector metrics.Collector) (engine.Status, error) {
	if err := t.open(); err != nil {
		return engine.InProgress, err
	}
	if !gm.Ready() {
		if err := gm.Randomize(); err != nil {
			return engine.InProgress, err
		}
	}
	e, err := gm.Start(t, collector)
	if err != nil {
		return engine.InProgress, err
	}
	return t.Run(ctx, e)
}

// Run shows the boards until the player closes the ui with Ctrl+C or ctx is done.
func (t *Terminal) Run(ctx context.Context, e *engine.Engine) (engine.Status, error) {
	if err := t.open(); err != nil {
		return e.Status(), err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := t.listen(ctx, e)
		if err != nil {
			cancel()
		}
		done <- err
	}()

	t.say("Click a cell on the bot's board to fire.")
	t.ui.Start(ctx, nil)
	cancel()

	if err := <-done; err != nil {
		return e.Status(), err
	}
	if e.Status() == engine.InProgress {
		return e.Status(), ErrQuit
	}
	return e.Status(), nil
}

func (t *Terminal) listen(ctx context.Context, e *engine.Engine) error {
	board := t.boards[communication.BotSide]
	for {
		coord := board.Listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		_, err := t.Click(ctx, e, coord)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, engine.ErrAgentExhausted):
			return err
		}
	}
}

// open creates the warships-gui widgets and draws the current state on them.
func (t *Terminal) open() error {
	if t.size > guiSize {
		return ErrBoardTooLarge
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ui != nil {
		return nil
	}

	t.ui = gui.NewGUI(true)
	t.ui.Draw(gui.NewText(1, 1, "You", nil))
	t.ui.Draw(gui.NewText(50, 1, "Bot", nil))
	t.status = gui.NewText(1, 26, t.message, nil)
	t.ui.Draw(t.status)

	t.boards = map[communication.Side]*gui.Board{
		communication.HumanSide: gui.NewBoard(1, 3, nil),
		communication.BotSide:   gui.NewBoard(50, 3, nil),
	}
	for side, board := range t.boards {
		board.SetStates(*t.states[side])
		t.ui.Draw(board)
	}
	return nil
}

func (t *Terminal) say(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message = msg
	if t.status != nil {
		t.status.SetText(msg)
	}
}

func (t *Terminal) report(c game.Coordinate, status engine.Status) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := fmt.Sprintf("%s: %s", c, t.view(communication.BotSide, c))
	if reply, ok := t.last[communication.HumanSide]; ok {
		msg += fmt.Sprintf(", bot fired at %s: %s", reply, t.view(communication.HumanSide, reply))
	}
	switch status {
	case engine.HumanWin:
		msg += ". You win!"
	case engine.BotWin:
		msg += ". The bot wins."
	}
	return msg
}

func (t *Terminal) view(side communication.Side, c game.Coordinate) communication.CellView {
	if !t.onBoard(side, c) {
		return communication.ViewEmpty
	}
	return t.views[side][c.Row][c.Col]
}

func (t *Terminal) onBoard(side communication.Side, c game.Coordinate) bool {
	_, ok := t.views[side]
	return ok && c.Row >= 0 && c.Row < t.size && c.Col >= 0 && c.Col < t.size
}
