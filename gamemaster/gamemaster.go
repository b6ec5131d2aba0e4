package gamemaster

import (
	"errors"
	"fmt"
	"time"

	"battleship/agent"
	"battleship/communication"
	"battleship/engine"
	"battleship/experiments/metrics"
	"battleship/game"
	"battleship/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrNotReady = errors.New("not every ship has been placed")

type Option func(gm *GameMaster)

func WithDifficulty(difficulty agent.Difficulty) Option {
	return func(gm *GameMaster) {
		if difficulty != "" {
			gm.difficulty = difficulty
		}
	}
}

func WithMissPolicy(policy agent.MissPolicy) Option {
	return func(gm *GameMaster) {
		gm.missPolicy = policy
	}
}

func WithDelay(minDelay, maxDelay time.Duration) Option {
	return func(gm *GameMaster) {
		gm.minDelay = minDelay
		gm.maxDelay = maxDelay
	}
}

// WithRand seeds every random choice made for the games this master starts.
func WithRand(rng *rand.Rand) Option {
	return func(gm *GameMaster) {
		if rng != nil {
			gm.rng = rng
		}
	}
}

// GameMaster runs the human's setup and starts the game once the fleet is in place.
type GameMaster struct {
	rules      game.Rules
	placement  *game.Placement
	difficulty agent.Difficulty
	missPolicy agent.MissPolicy
	minDelay   time.Duration
	maxDelay   time.Duration
	rng        *rand.Rand
}

func NewGameMaster(rules game.Rules, options ...Option) *GameMaster {
	gm := &GameMaster{ // Default values
		rules:      rules,
		placement:  game.NewPlacement(rules),
		difficulty: agent.Normal,
		missPolicy: agent.IgnoreMisses,
		minDelay:   meta.MIN_BOT_DELAY_MS * time.Millisecond,
		maxDelay:   meta.MAX_BOT_DELAY_MS * time.Millisecond,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(gm)
	}
	return gm
}

func (gm *GameMaster) Placement() *game.Placement {
	return gm.placement
}

func (gm *GameMaster) Counter() *game.Counter {
	return gm.placement.Counter()
}

func (gm *GameMaster) CanPlace(id int, origin game.Coordinate) bool {
	return gm.placement.CanPlace(id, origin)
}

func (gm *GameMaster) Place(id int, origin game.Coordinate) bool {
	return gm.placement.Place(id, origin)
}

func (gm *GameMaster) Remove(id int) bool {
	return gm.placement.Remove(id)
}

func (gm *GameMaster) Rotate(id int) bool {
	return gm.placement.Rotate(id)
}

func (gm *GameMaster) Ready() bool {
	return gm.placement.Ready()
}

// Randomize replaces the current setup with a generated one.
func (gm *GameMaster) Randomize() error {
	layout, err := gm.generate(gm.placement.Fleet())
	if err != nil {
		return fmt.Errorf("failed to randomize layout: %w", err)
	}
	gm.placement.Apply(layout)
	return nil
}

// Preview shows where ship id would land if dropped at origin: allowed cells when the placement is
// legal, otherwise the on-board part of the footprint as forbidden.
func (gm *GameMaster) Preview(id int, origin game.Coordinate) []communication.Event {
	ship, ok := gm.placement.Fleet().Ship(id)
	if !ok {
		return nil
	}
	view := communication.ViewForbidden
	if gm.placement.CanPlace(id, origin) {
		view = communication.ViewAllowed
	}

	var events []communication.Event
	for _, c := range ship.Footprint(origin) {
		if gm.placement.Board().InBounds(c) {
			events = append(events, communication.Event{Board: communication.HumanSide, Cell: c, View: view})
		}
	}
	return events
}

// Start lays out the bot's fleet and begins a game against the current setup.
func (gm *GameMaster) Start(renderer communication.Renderer, collector metrics.Collector) (*engine.Engine, error) {
	if !gm.Ready() {
		return nil, ErrNotReady
	}
	human := gm.placement.Layout()
	bot, err := gm.generate(game.NewFleet(gm.rules))
	if err != nil {
		return nil, fmt.Errorf("failed to lay out bot fleet: %w", err)
	}

	size := gm.rules.BoardSize()
	a := agent.New(gm.difficulty, size,
		agent.WithRand(gm.child()),
		agent.WithMissPolicy(gm.missPolicy),
	)
	e := engine.LocalEngine(human, bot, a,
		engine.WithDelay(gm.minDelay, gm.maxDelay),
		engine.WithRand(gm.child()),
		engine.WithRenderer(renderer),
		engine.WithCollector(collector),
		engine.WithLabel(string(gm.difficulty)),
	)
	if renderer != nil {
		renderer.Apply(communication.LayoutEvents(communication.HumanSide, human)...)
	}

	log.Info().Msgf("game %s: %d ships each on a %dx%d board", e.ID(), human.Fleet.Len(), size, size)
	return e, nil
}

func (gm *GameMaster) generate(fleet *game.Fleet) (*game.Layout, error) {
	return game.NewGenerator(gm.child()).Generate(gm.rules.BoardSize(), fleet)
}

func (gm *GameMaster) child() *rand.Rand {
	return rand.New(rand.NewSource(gm.rng.Uint64()))
}
