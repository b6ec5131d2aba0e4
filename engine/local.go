package engine

import (
	"context"
	"time"

	"battleship/agent"
	"battleship/communication"
	"battleship/experiments/metrics"
	"battleship/game"
	"battleship/meta"
	"battleship/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Engine sequences one human-vs-bot game. It is not safe for concurrent use; the owner serializes calls.
type Engine struct {
	id       string
	label    string
	human    *player.Player
	bot      *player.Player
	agent    agent.Agent
	phase    phase
	status   Status
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand
	renderer communication.Renderer
	metrics  metrics.Collector
	result   metrics.GameMetric
}

// LocalEngine starts a game between the human's layout and the bot's layout. The human shoots first.
func LocalEngine(human, bot *game.Layout, a agent.Agent, options ...Option) *Engine {
	if human == nil || bot == nil || a == nil {
		panic("both layouts and an agent are required")
	}
	if human.Board.Size() != bot.Board.Size() {
		panic("boards must have the same size")
	}

	e := &Engine{ // Default values
		id:       uuid.NewString(),
		human:    player.NewPlayer("human", communication.HumanSide, human),
		bot:      player.NewPlayer("bot", communication.BotSide, bot),
		agent:    a,
		phase:    waitingForHuman,
		status:   InProgress,
		minDelay: meta.MIN_BOT_DELAY_MS * time.Millisecond,
		maxDelay: meta.MAX_BOT_DELAY_MS * time.Millisecond,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		renderer: communication.NewNopRenderer(),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}

	e.metrics.Start(e.id, e.label)
	log.Info().Msgf("game %s started (opponent=%s, delay=%s..%s)", e.id, e.label, e.minDelay, e.maxDelay)
	return e
}

func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) Status() Status {
	return e.status
}

// Accepting reports whether a human shot would currently be taken.
func (e *Engine) Accepting() bool {
	return e.phase == waitingForHuman
}

// BotTurnPending is true after a human miss until the bot turn has run to completion.
func (e *Engine) BotTurnPending() bool {
	return e.phase == botTurn
}

func (e *Engine) Human() *player.Player {
	return e.human
}

func (e *Engine) Bot() *player.Player {
	return e.bot
}

// Result holds the collected metrics once the game is over.
func (e *Engine) Result() metrics.GameMetric {
	return e.result
}

// TakeHumanShot fires at the bot's board. A hit keeps the turn; a miss hands it to the bot.
func (e *Engine) TakeHumanShot(c game.Coordinate) (game.ShotResult, error) {
	switch e.phase {
	case gameOver:
		return game.ShotResult{}, ErrGameOver
	case resolvingHuman, botTurn:
		return game.ShotResult{}, ErrInputLocked
	}
	if !e.bot.Board().InBounds(c) {
		return game.ShotResult{}, ErrInvalidCoordinate
	}
	if !e.bot.Shots.CanShoot(c) {
		return game.ShotResult{}, ErrRepeatedShot
	}

	e.phase = resolvingHuman
	result := e.fire(metrics.Human, e.bot, c)
	switch {
	case e.bot.Defeated():
		e.finish(HumanWin)
	case result.Status == game.Miss:
		e.phase = botTurn
	default:
		e.phase = waitingForHuman
	}
	return result, nil
}

// RunBotTurn lets the bot shoot until it misses or wins. A cancelled ctx interrupts the pause before
// a shot; the turn stays pending and can be resumed by calling RunBotTurn again.
func (e *Engine) RunBotTurn(ctx context.Context) (Status, error) {
	switch e.phase {
	case gameOver:
		return e.status, ErrGameOver
	case waitingForHuman, resolvingHuman:
		return e.status, ErrNotBotTurn
	}

	for {
		if err := e.pause(ctx); err != nil {
			log.Debug().Msgf("game %s bot turn interrupted: %v", e.id, err)
			return e.status, err
		}

		c, err := e.nextBotCell()
		if err != nil {
			return e.status, err
		}
		result := e.fire(metrics.Bot, e.human, c)
		e.agent.RecordOutcome(c, result)

		if e.human.Defeated() {
			e.finish(BotWin)
			return e.status, nil
		}
		if result.Status == game.Miss {
			e.phase = waitingForHuman
			return e.status, nil
		}
	}
}

// Shoot is one complete human action: the shot itself and, after a miss, the bot's reply.
func (e *Engine) Shoot(ctx context.Context, c game.Coordinate) (Status, error) {
	result, err := e.TakeHumanShot(c)
	if err != nil {
		return e.status, err
	}
	if result.Status != game.Miss || e.phase != botTurn {
		return e.status, nil
	}
	return e.RunBotTurn(ctx)
}

func (e *Engine) fire(shooter metrics.Shooter, target *player.Player, c game.Coordinate) game.ShotResult {
	result, ruledOut := target.Receive(c)
	e.metrics.AddShot(shooter, c, result.Status)
	e.renderer.Apply(shotEvents(target.Side, c, result, ruledOut)...)
	log.Debug().Msgf("game %s: %s shot %s -> %s", e.id, shooter, c, result.Status)
	return result
}

// nextBotCell asks the agent for a cell that is still open on the human's board.
func (e *Engine) nextBotCell() (game.Coordinate, error) {
	size := e.human.Board().Size()
	for i := 0; i < size*size; i++ {
		c, ok := e.agent.CellToShoot()
		if !ok {
			break
		}
		if e.human.Shots.CanShoot(c) {
			return c, nil
		}
		log.Warn().Msgf("game %s: bot picked unavailable cell %s", e.id, c)
	}
	return game.Coordinate{}, ErrAgentExhausted
}

func (e *Engine) pause(ctx context.Context) error {
	d := e.delay()
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close abandons an unfinished game. Later shots fail with ErrGameOver and no winner is recorded.
func (e *Engine) Close() {
	if e.phase == gameOver {
		return
	}
	e.phase = gameOver
	e.metrics.Abort()
	log.Info().Msgf("game %s abandoned after %d human and %d bot shots",
		e.id, e.bot.ShotsReceived(), e.human.ShotsReceived())
}

func (e *Engine) delay() time.Duration {
	if e.maxDelay <= e.minDelay {
		return e.minDelay
	}
	return e.minDelay + time.Duration(e.rng.Int63n(int64(e.maxDelay-e.minDelay)))
}

func (e *Engine) finish(status Status) {
	e.status = status
	e.phase = gameOver

	winner := communication.HumanSide
	if status == BotWin {
		winner = communication.BotSide
	}
	e.result = e.metrics.Complete(string(winner))
	e.renderer.GameOver(winner)
	log.Info().Msgf("game %s over: %s after %d human and %d bot shots",
		e.id, status, e.bot.ShotsReceived(), e.human.ShotsReceived())
}

func shotEvents(side communication.Side, c game.Coordinate, result game.ShotResult, ruledOut []game.Coordinate) []communication.Event {
	var events []communication.Event
	switch result.Status {
	case game.Miss:
		events = append(events, communication.Event{Board: side, Cell: c, View: communication.ViewMiss})
	case game.Hit:
		events = append(events, communication.Event{Board: side, Cell: c, View: communication.ViewHit})
	case game.Destroyed:
		for _, cell := range result.Footprint() {
			events = append(events, communication.Event{Board: side, Cell: cell, View: communication.ViewDestroyed})
		}
		for _, cell := range ruledOut {
			events = append(events, communication.Event{Board: side, Cell: cell, View: communication.ViewMissAuto})
		}
	}
	return append(events, communication.Event{Board: side, Cell: c, View: communication.ViewLast})
}
