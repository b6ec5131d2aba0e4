package communication

import "battleship/game"

// Side names whose board an event refers to.
type Side string

const (
	HumanSide Side = "human"
	BotSide   Side = "bot"
)

// CellView is how a single cell should be drawn.
type CellView string

const (
	ViewEmpty     CellView = "empty"
	ViewShip      CellView = "ship"
	ViewHit       CellView = "hit"
	ViewMiss      CellView = "miss"
	ViewMissAuto  CellView = "miss-auto" // Halo cell revealed by a kill
	ViewDestroyed CellView = "destroyed"
	ViewLast      CellView = "last" // Most recently targeted cell; replaces the previous marker on that board
	ViewAllowed   CellView = "allowed"
	ViewForbidden CellView = "forbidden"
)

type Event struct {
	Board Side            `json:"board"`
	Cell  game.Coordinate `json:"cell"`
	View  CellView        `json:"view"`
}

// Renderer presents game progress. It is called synchronously by whoever owns the game.
type Renderer interface {
	Apply(events ...Event)
	// GameOver announces the winning side.
	GameOver(winner Side)
}

type nopRenderer struct{}

func NewNopRenderer() Renderer {
	return nopRenderer{}
}

func (nopRenderer) Apply(events ...Event) {}
func (nopRenderer) GameOver(winner Side)  {}

// Buffer collects events until drained, for transports that send them in batches.
type Buffer struct {
	events []Event
	winner Side
}

func (b *Buffer) Apply(events ...Event) {
	b.events = append(b.events, events...)
}

func (b *Buffer) GameOver(winner Side) {
	b.winner = winner
}

// Drain returns and forgets the collected events.
func (b *Buffer) Drain() []Event {
	events := b.events
	b.events = nil
	return events
}

// Winner is empty until GameOver was called.
func (b *Buffer) Winner() Side {
	return b.winner
}

// LayoutEvents draws every ship of a layout, e.g. to show the human their own fleet.
func LayoutEvents(side Side, layout *game.Layout) []Event {
	var events []Event
	for _, c := range layout.Board.Occupied() {
		events = append(events, Event{Board: side, Cell: c, View: ViewShip})
	}
	return events
}
