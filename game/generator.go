package game

import (
	"errors"

	"battleship/meta"

	"golang.org/x/exp/rand"
)

// ErrPlacementGeneration is returned when no layout was found within the attempt budget.
var ErrPlacementGeneration = errors.New("could not place every ship on the board")

// Layout is a board together with the fleet placed on it.
type Layout struct {
	Board *Board
	Fleet *Fleet
}

// Origins maps every placed ship id to its first cell.
func (l *Layout) Origins() map[int]Coordinate {
	origins := make(map[int]Coordinate)
	for _, s := range l.Fleet.Ships() {
		if origin, ok := l.Board.Origin(s.ID); ok {
			origins[s.ID] = origin
		}
	}
	return origins
}

type Generator struct {
	rng           *rand.Rand
	shipAttempts  int
	fleetAttempts int
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{
		rng:           rng,
		shipAttempts:  meta.SHIP_ATTEMPTS,
		fleetAttempts: meta.FLEET_ATTEMPTS,
	}
}

// Generate lays the fleet out on an empty size×size board. The input fleet is left untouched;
// the returned fleet carries the orientation chosen for every ship.
func (g *Generator) Generate(size int, fleet *Fleet) (*Layout, error) {
	ships := fleet.Ships()
	board := NewBoard(size)

	for attempt := 0; attempt < g.fleetAttempts; attempt++ {
		if g.placeAll(board, ships) {
			return &Layout{Board: board, Fleet: NewFleetOf(ships)}, nil
		}
		board.Clear()
	}
	return nil, ErrPlacementGeneration
}

func (g *Generator) placeAll(board *Board, ships []Ship) bool {
	for i := range ships {
		if !g.placeOne(board, &ships[i]) {
			return false
		}
	}
	return true
}

func (g *Generator) placeOne(board *Board, ship *Ship) bool {
	size := board.Size()
	for attempt := 0; attempt < g.shipAttempts; attempt++ {
		origin := Coordinate{Col: g.rng.Intn(size), Row: g.rng.Intn(size)}
		ship.Orientation = Horizontal
		if g.rng.Intn(2) == 1 {
			ship.Orientation = Vertical
		}
		if board.Place(*ship, origin) {
			return true
		}
	}
	return false
}
