package engine

import (
	"context"
	"testing"
	"time"

	"battleship/communication"
	"battleship/experiments/metrics"
	"battleship/game"

	"github.com/stretchr/testify/require"
)

var origins = map[int]game.Coordinate{
	1:  {Col: 0, Row: 0},
	2:  {Col: 5, Row: 0},
	3:  {Col: 0, Row: 2},
	4:  {Col: 4, Row: 2},
	5:  {Col: 7, Row: 2},
	6:  {Col: 0, Row: 4},
	7:  {Col: 3, Row: 4},
	8:  {Col: 5, Row: 4},
	9:  {Col: 7, Row: 4},
	10: {Col: 9, Row: 4},
}

var miss = game.Coordinate{Col: 9, Row: 9}

func layout(t *testing.T) *game.Layout {
	l, err := game.NewLayout(10, game.NewFleet(game.NewStandardRules()), origins)
	require.NoError(t, err)
	return l
}

// scripted shoots a fixed list of cells.
type scripted struct {
	cells    []game.Coordinate
	calls    int
	outcomes []game.ShotStatus
}

func (s *scripted) CellToShoot() (game.Coordinate, bool) {
	if s.calls >= len(s.cells) {
		return game.Coordinate{}, false
	}
	c := s.cells[s.calls]
	s.calls++
	return c, true
}

func (s *scripted) RecordOutcome(c game.Coordinate, result game.ShotResult) {
	s.outcomes = append(s.outcomes, result.Status)
}

func newEngine(t *testing.T, a *scripted, options ...Option) (*Engine, *communication.Buffer) {
	buf := &communication.Buffer{}
	options = append([]Option{WithDelay(0, 0), WithRenderer(buf)}, options...)
	return LocalEngine(layout(t), layout(t), a, options...), buf
}

func TestTakeHumanShot(t *testing.T) {
	t.Run("human sinks the fleet without the bot shooting", func(t *testing.T) {
		a := &scripted{}
		e, buf := newEngine(t, a, WithCollector(metrics.NewCollector()))

		for _, c := range layout(t).Board.Occupied() {
			status, err := e.Shoot(context.Background(), c)
			require.NoError(t, err, "Shot at %s", c)
			if status == InProgress {
				require.True(t, e.Accepting(), "A hit should keep the human's turn")
			}
		}

		require.Equal(t, HumanWin, e.Status())
		require.Zero(t, a.calls, "Bot should never have been asked for a cell")
		require.Equal(t, communication.HumanSide, buf.Winner())
		require.Equal(t, 20, e.Result().HumanShots)
		require.Equal(t, 20, e.Result().HumanHits)
		require.Equal(t, "human", e.Result().Winner)

		_, err := e.TakeHumanShot(miss)
		require.ErrorIs(t, err, ErrGameOver)
		_, err = e.RunBotTurn(context.Background())
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("invalid and repeated shots are rejected", func(t *testing.T) {
		e, _ := newEngine(t, &scripted{})

		_, err := e.TakeHumanShot(game.Coordinate{Col: 10, Row: 0})
		require.ErrorIs(t, err, ErrInvalidCoordinate)

		_, err = e.TakeHumanShot(game.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)
		_, err = e.TakeHumanShot(game.Coordinate{Col: 0, Row: 0})
		require.ErrorIs(t, err, ErrRepeatedShot)
		require.Equal(t, 1, e.Bot().ShotsReceived(), "Rejected shot should not reach the resolver")
	})

	t.Run("kill reveals the halo and forbids shooting it", func(t *testing.T) {
		e, buf := newEngine(t, &scripted{})

		result, err := e.TakeHumanShot(game.Coordinate{Col: 9, Row: 4})

		require.NoError(t, err)
		require.Equal(t, game.Destroyed, result.Status)
		require.Equal(t, []communication.Event{
			{Board: communication.BotSide, Cell: game.Coordinate{Col: 9, Row: 4}, View: communication.ViewDestroyed},
			{Board: communication.BotSide, Cell: game.Coordinate{Col: 8, Row: 3}, View: communication.ViewMissAuto},
			{Board: communication.BotSide, Cell: game.Coordinate{Col: 9, Row: 3}, View: communication.ViewMissAuto},
			{Board: communication.BotSide, Cell: game.Coordinate{Col: 8, Row: 4}, View: communication.ViewMissAuto},
			{Board: communication.BotSide, Cell: game.Coordinate{Col: 8, Row: 5}, View: communication.ViewMissAuto},
			{Board: communication.BotSide, Cell: game.Coordinate{Col: 9, Row: 5}, View: communication.ViewMissAuto},
			{Board: communication.BotSide, Cell: game.Coordinate{Col: 9, Row: 4}, View: communication.ViewLast},
		}, buf.Drain())
		require.Equal(t, 3, e.Bot().Afloat.Remaining(1))

		_, err = e.TakeHumanShot(game.Coordinate{Col: 8, Row: 4})
		require.ErrorIs(t, err, ErrRepeatedShot)
	})

	t.Run("miss locks input until the bot has played", func(t *testing.T) {
		e, _ := newEngine(t, &scripted{cells: []game.Coordinate{miss}})

		_, err := e.RunBotTurn(context.Background())
		require.ErrorIs(t, err, ErrNotBotTurn)

		result, err := e.TakeHumanShot(miss)
		require.NoError(t, err)
		require.Equal(t, game.Miss, result.Status)
		require.False(t, e.Accepting())
		require.True(t, e.BotTurnPending())

		_, err = e.TakeHumanShot(game.Coordinate{Col: 0, Row: 0})
		require.ErrorIs(t, err, ErrInputLocked)

		status, err := e.RunBotTurn(context.Background())
		require.NoError(t, err)
		require.Equal(t, InProgress, status)
		require.True(t, e.Accepting())
	})
}

func TestRunBotTurn(t *testing.T) {
	t.Run("bot keeps shooting while it hits", func(t *testing.T) {
		a := &scripted{cells: []game.Coordinate{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 8, Row: 8}, {Col: 7, Row: 7}}}
		e, _ := newEngine(t, a)

		status, err := e.Shoot(context.Background(), miss)

		require.NoError(t, err)
		require.Equal(t, InProgress, status)
		require.Equal(t, 3, a.calls, "Turn should end on the first bot miss")
		require.Equal(t, []game.ShotStatus{game.Hit, game.Hit, game.Miss}, a.outcomes)
		require.True(t, e.Accepting())
	})

	t.Run("bot wins by sinking the human fleet", func(t *testing.T) {
		a := &scripted{cells: layout(t).Board.Occupied()}
		e, buf := newEngine(t, a, WithCollector(metrics.NewCollector()))

		status, err := e.Shoot(context.Background(), miss)

		require.NoError(t, err)
		require.Equal(t, BotWin, status)
		require.Equal(t, communication.BotSide, buf.Winner())
		require.Equal(t, 20, e.Result().LongestBotStreak)
		require.False(t, e.Accepting())
	})

	t.Run("cells already targeted are skipped", func(t *testing.T) {
		a := &scripted{cells: []game.Coordinate{{Col: 9, Row: 4}, {Col: 9, Row: 5}, {Col: 9, Row: 4}, {Col: 8, Row: 8}}}
		e, _ := newEngine(t, a)

		_, err := e.Shoot(context.Background(), miss)

		require.NoError(t, err)
		require.Equal(t, 4, a.calls)
		require.Equal(t, []game.ShotStatus{game.Destroyed, game.Miss}, a.outcomes,
			"Halo cell and the repeated kill should never be resolved")
		require.Equal(t, 2, e.Human().ShotsReceived())
	})

	t.Run("exhausted agent is reported", func(t *testing.T) {
		e, _ := newEngine(t, &scripted{})

		_, err := e.Shoot(context.Background(), miss)

		require.ErrorIs(t, err, ErrAgentExhausted)
	})

	t.Run("cancelled pause leaves the turn pending", func(t *testing.T) {
		a := &scripted{cells: []game.Coordinate{miss}}
		e, _ := newEngine(t, a)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := e.Shoot(ctx, miss)
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, a.calls)
		require.True(t, e.BotTurnPending())

		status, err := e.RunBotTurn(context.Background())
		require.NoError(t, err)
		require.Equal(t, InProgress, status)
		require.Equal(t, 1, a.calls)
	})

	t.Run("cancel interrupts a long pause", func(t *testing.T) {
		e, _ := newEngine(t, &scripted{cells: []game.Coordinate{miss}}, WithDelay(time.Hour, time.Hour))
		_, err := e.TakeHumanShot(miss)
		require.NoError(t, err)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err = e.RunBotTurn(ctx)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Less(t, time.Since(start), time.Minute)
	})
}

// counting records how a game ended.
type counting struct {
	metrics.Collector
	completed []string
	aborted   int
}

func (c *counting) Complete(winner string) metrics.GameMetric {
	c.completed = append(c.completed, winner)
	return c.Collector.Complete(winner)
}

func (c *counting) Abort() {
	c.aborted++
	c.Collector.Abort()
}

func TestClose(t *testing.T) {
	t.Run("abandoned game is aborted once without a winner", func(t *testing.T) {
		collector := &counting{Collector: metrics.NewCollector()}
		e, buf := newEngine(t, &scripted{}, WithCollector(collector))
		_, err := e.Shoot(context.Background(), origins[1])
		require.NoError(t, err)

		e.Close()
		e.Close()

		require.Equal(t, 1, collector.aborted)
		require.Empty(t, collector.completed)
		require.Equal(t, InProgress, e.Status())
		require.Empty(t, buf.Winner())
		_, err = e.Shoot(context.Background(), origins[2])
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("finished game is not aborted", func(t *testing.T) {
		collector := &counting{Collector: metrics.NewCollector()}
		e, _ := newEngine(t, &scripted{}, WithCollector(collector))
		for _, c := range layout(t).Board.Occupied() {
			_, err := e.Shoot(context.Background(), c)
			require.NoError(t, err)
		}

		e.Close()

		require.Zero(t, collector.aborted)
		require.Equal(t, []string{"human"}, collector.completed)
	})
}
