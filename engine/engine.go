package engine

import (
	"errors"
	"time"

	"battleship/communication"
	"battleship/experiments/metrics"

	"golang.org/x/exp/rand"
)

var (
	ErrInvalidCoordinate = errors.New("coordinate is off the board")
	ErrGameOver          = errors.New("game is over")
	ErrInputLocked       = errors.New("waiting for the bot to finish its turn")
	ErrRepeatedShot      = errors.New("cell was already targeted")
	ErrNotBotTurn        = errors.New("it is not the bot's turn")
	ErrAgentExhausted    = errors.New("bot has no cell left to shoot")
)

type Status int

const (
	InProgress Status = iota
	HumanWin
	BotWin
)

func (s Status) String() string {
	switch s {
	case HumanWin:
		return "human_win"
	case BotWin:
		return "bot_win"
	default:
		return "in_progress"
	}
}

type phase int

const (
	waitingForHuman phase = iota
	resolvingHuman
	botTurn
	gameOver
)

type Option func(e *Engine)

// WithDelay sets the bot's pause before each shot, drawn from [min, max).
func WithDelay(minDelay, maxDelay time.Duration) Option {
	return func(e *Engine) {
		if minDelay >= 0 && maxDelay >= minDelay {
			e.minDelay = minDelay
			e.maxDelay = maxDelay
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func WithRenderer(renderer communication.Renderer) Option {
	return func(e *Engine) {
		if renderer != nil {
			e.renderer = renderer
		}
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(e *Engine) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

// WithLabel names the opponent in metrics, typically the bot difficulty.
func WithLabel(label string) Option {
	return func(e *Engine) {
		e.label = label
	}
}

// WithID overrides the generated game id.
func WithID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.id = id
		}
	}
}
