package gamemaster

import (
	"context"
	"testing"

	"battleship/agent"
	"battleship/communication"
	"battleship/engine"
	"battleship/experiments/metrics"
	"battleship/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newGameMaster(options ...Option) *GameMaster {
	options = append([]Option{WithRand(rand.New(rand.NewSource(5))), WithDelay(0, 0)}, options...)
	return NewGameMaster(game.NewStandardRules(), options...)
}

func TestSetup(t *testing.T) {
	t.Run("start requires every ship on the board", func(t *testing.T) {
		gm := newGameMaster()
		require.True(t, gm.Place(1, game.Coordinate{Col: 0, Row: 0}))

		_, err := gm.Start(nil, nil)

		require.ErrorIs(t, err, ErrNotReady)
	})

	t.Run("randomize fills the board", func(t *testing.T) {
		gm := newGameMaster()

		require.NoError(t, gm.Randomize())

		require.True(t, gm.Ready())
		require.True(t, gm.Counter().AllPlaced())
		require.Len(t, gm.Placement().Board().Occupied(), 20)
	})

	t.Run("randomize reports impossible fleets", func(t *testing.T) {
		rules := &game.StandardRules{Size: 3, Counts: map[int]int{3: 3}}
		gm := NewGameMaster(rules, WithRand(rand.New(rand.NewSource(1))))

		err := gm.Randomize()

		require.ErrorIs(t, err, game.ErrPlacementGeneration)
		require.False(t, gm.Ready())
	})

	t.Run("preview signals allowed and forbidden drops", func(t *testing.T) {
		gm := newGameMaster()

		allowed := gm.Preview(1, game.Coordinate{Col: 0, Row: 0})
		require.Len(t, allowed, 4)
		for _, ev := range allowed {
			require.Equal(t, communication.ViewAllowed, ev.View)
		}

		forbidden := gm.Preview(1, game.Coordinate{Col: 7, Row: 0})
		require.Len(t, forbidden, 3, "Off-board cells are not previewed")
		for _, ev := range forbidden {
			require.Equal(t, communication.ViewForbidden, ev.View)
		}

		require.Nil(t, gm.Preview(42, game.Coordinate{}))
	})

	t.Run("rotate and remove go through the placement", func(t *testing.T) {
		gm := newGameMaster()
		require.True(t, gm.Place(2, game.Coordinate{Col: 0, Row: 0}))

		require.True(t, gm.Rotate(2))
		require.True(t, gm.CanPlace(3, game.Coordinate{Col: 2, Row: 0}))
		require.True(t, gm.Remove(2))
		require.Equal(t, 0, gm.Counter().Placed())
	})
}

func TestStart(t *testing.T) {
	t.Run("human can sink the generated bot fleet", func(t *testing.T) {
		gm := newGameMaster(WithDifficulty(agent.Easy))
		require.NoError(t, gm.Randomize())
		buf := &communication.Buffer{}

		e, err := gm.Start(buf, metrics.NewCollector())
		require.NoError(t, err)
		require.Len(t, buf.Drain(), 20, "Human fleet should be drawn at start")

		for _, c := range e.Bot().Board().Occupied() {
			_, err := e.Shoot(context.Background(), c)
			require.NoError(t, err)
		}
		require.Equal(t, engine.HumanWin, e.Status())
		require.Equal(t, "easy", e.Result().Difficulty)
	})

	t.Run("bot plays a whole game to the end", func(t *testing.T) {
		gm := newGameMaster(WithDifficulty(agent.Normal))
		require.NoError(t, gm.Randomize())
		e, err := gm.Start(nil, nil)
		require.NoError(t, err)

		empty := e.Bot().Shots.Untargeted()
		for _, c := range empty {
			if id, _ := e.Bot().Board().Get(c); id != game.Empty {
				continue
			}
			if !e.Bot().Shots.CanShoot(c) {
				continue
			}
			status, err := e.Shoot(context.Background(), c)
			require.NoError(t, err)
			if status != engine.InProgress {
				break
			}
		}

		require.Equal(t, engine.BotWin, e.Status(), "Human only missed, so the bot must win")
	})
}
