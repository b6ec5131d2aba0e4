package server

import (
	"battleship/communication"
	"battleship/game"
)

// Inbound message types.
const (
	TypeNewGame = "new_game"
	TypeShot    = "shot"
)

// Outbound message types.
const (
	TypeState  = "state"
	TypeEvents = "events"
	TypeStatus = "status"
	TypeError  = "error"
)

type Inbound struct {
	Type  string      `json:"type"`
	Cell  string      `json:"cell,omitempty"`  // shot target, e.g. "C5"
	Ships []Placement `json:"ships,omitempty"` // new_game layout; empty for a random one
}

type Placement struct {
	ID       int    `json:"id"`
	Cell     string `json:"cell"`
	Vertical bool   `json:"vertical"`
}

type Outbound struct {
	Type      string                `json:"type"`
	GameID    string                `json:"game_id,omitempty"`
	BoardSize int                   `json:"board_size,omitempty"`
	Ships     []ShipState           `json:"ships,omitempty"`
	Events    []communication.Event `json:"events,omitempty"`
	Status    string                `json:"status,omitempty"`
	Turn      string                `json:"turn,omitempty"`
	Winner    string                `json:"winner,omitempty"`
	Message   string                `json:"message,omitempty"`
}

type ShipState struct {
	ID          int    `json:"id"`
	Size        int    `json:"size"`
	Orientation string `json:"orientation"`
	Cell        string `json:"cell"`
}

func shipStates(layout *game.Layout) []ShipState {
	origins := layout.Origins()
	states := make([]ShipState, 0, layout.Fleet.Len())
	for _, ship := range layout.Fleet.Ships() {
		states = append(states, ShipState{
			ID:          ship.ID,
			Size:        ship.Size,
			Orientation: ship.Orientation.String(),
			Cell:        origins[ship.ID].String(),
		})
	}
	return states
}
