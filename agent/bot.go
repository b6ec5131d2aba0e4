package agent

import (
	"time"

	"battleship/game"
	"battleship/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(b *Bot)

func WithRand(rng *rand.Rand) Option {
	return func(b *Bot) {
		if rng != nil {
			b.rng = rng
		}
	}
}

func WithMissPolicy(policy MissPolicy) Option {
	return func(b *Bot) {
		if policy != "" {
			b.missPolicy = policy
		}
	}
}

// Bot shoots at random until it hits, then (on Normal) works along the damaged ship until it sinks.
type Bot struct {
	difficulty Difficulty
	missPolicy MissPolicy
	size       int
	shots      *game.ShotGrid
	history    []game.Coordinate // hits on the ship being tracked, oldest first
	rng        *rand.Rand
}

func New(difficulty Difficulty, boardSize int, options ...Option) *Bot {
	if boardSize < 1 {
		panic("board size must be positive")
	}
	b := &Bot{ // Default values
		difficulty: difficulty,
		missPolicy: IgnoreMisses,
		size:       boardSize,
		shots:      game.NewShotGrid(boardSize),
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *Bot) Difficulty() Difficulty {
	return b.difficulty
}

// Shots exposes the bot's view of which cells it has already targeted.
func (b *Bot) Shots() *game.ShotGrid {
	return b.shots
}

// History returns a copy of the tracked hits.
func (b *Bot) History() []game.Coordinate {
	return append([]game.Coordinate(nil), b.history...)
}

func (b *Bot) CellToShoot() (game.Coordinate, bool) {
	if b.shots.Remaining() == 0 {
		return game.Coordinate{}, false
	}

	var c game.Coordinate
	switch {
	case b.difficulty != Normal || len(b.history) == 0:
		c = b.randomCell()
	case len(b.history) == 1:
		c = b.aroundFirstHit()
	default:
		c = b.alongLine()
	}
	b.shots.Mark(c)
	return c, true
}

func (b *Bot) RecordOutcome(c game.Coordinate, result game.ShotResult) {
	switch result.Status {
	case game.Hit:
		b.history = append(b.history, c)
	case game.Destroyed:
		b.history = nil
		for _, n := range result.Halo(b.size) {
			b.shots.Mark(n)
		}
		log.Debug().Msgf("Bot sank %s, %d cells left to try", result.Ship, b.shots.Remaining())
	case game.Miss:
		if b.missPolicy == TrackMisses && len(b.history) > 0 {
			b.history = append(b.history, c)
		}
	}
}

// randomCell draws uniformly among untargeted cells. Rejection sampling is cheap while the grid is
// sparse; once the draw budget runs out the untargeted cells are enumerated instead.
func (b *Bot) randomCell() game.Coordinate {
	for i := 0; i < 4*b.size*b.size; i++ {
		c := game.Coordinate{Col: b.rng.Intn(b.size), Row: b.rng.Intn(b.size)}
		if b.shots.CanShoot(c) {
			return c
		}
	}
	cells := b.shots.Untargeted()
	return cells[b.rng.Intn(len(cells))]
}

func (b *Bot) aroundFirstHit() game.Coordinate {
	if c, ok := b.firstOpen(utils.Shuffle(b.rng, game.Orthogonal(b.history[0]))); ok {
		return c
	}
	return b.randomCell()
}

// alongLine extends the tracked line past its newest end, then past its oldest end.
func (b *Bot) alongLine() game.Coordinate {
	first := b.history[0]
	last := b.history[len(b.history)-1]
	dCol := utils.Sign(last.Col, first.Col)
	dRow := utils.Sign(last.Row, first.Row)

	candidates := []game.Coordinate{
		last.Offset(dCol, dRow),
		first.Offset(-dCol, -dRow),
	}
	if c, ok := b.firstOpen(candidates); ok {
		return c
	}
	return b.aroundFirstHit()
}

func (b *Bot) firstOpen(cells []game.Coordinate) (game.Coordinate, bool) {
	for _, c := range cells {
		if b.shots.CanShoot(c) {
			return c, true
		}
	}
	return game.Coordinate{}, false
}
