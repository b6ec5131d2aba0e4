package game

import "fmt"

// Placement is the human's setup phase: ships are put on, moved, rotated and removed one by one.
// Every operation reports success as a bool; an illegal move leaves the board unchanged.
type Placement struct {
	board   *Board
	fleet   *Fleet
	origins map[int]Coordinate
	counter *Counter
}

func NewPlacement(rules Rules) *Placement {
	fleet := NewFleet(rules)
	return &Placement{
		board:   NewBoard(rules.BoardSize()),
		fleet:   fleet,
		origins: make(map[int]Coordinate),
		counter: NewCounter(fleet),
	}
}

func (p *Placement) Board() *Board {
	return p.board
}

func (p *Placement) Fleet() *Fleet {
	return p.fleet
}

func (p *Placement) Counter() *Counter {
	return p.counter
}

// Origin returns where the ship currently starts, if it is on the board.
func (p *Placement) Origin(id int) (Coordinate, bool) {
	origin, ok := p.origins[id]
	return origin, ok
}

// CanPlace reports whether the ship could start at origin. A ship already on the board is
// checked as if it had been lifted off first.
func (p *Placement) CanPlace(id int, origin Coordinate) bool {
	ship, ok := p.fleet.Ship(id)
	if !ok {
		return false
	}
	old, placed := p.origins[id]
	if placed {
		p.board.Remove(id)
		defer p.board.Place(ship, old)
	}
	return p.board.CanPlace(ship, origin)
}

// Place puts the ship at origin, moving it if it was already on the board.
func (p *Placement) Place(id int, origin Coordinate) bool {
	ship, ok := p.fleet.Ship(id)
	if !ok {
		return false
	}
	old, placed := p.origins[id]
	if placed {
		p.board.Remove(id)
	}
	if !p.board.Place(ship, origin) {
		if placed {
			p.board.Place(ship, old)
		}
		return false
	}
	p.origins[id] = origin
	if !placed {
		p.counter.Take(ship.Size)
	}
	return true
}

// Remove takes the ship off the board.
func (p *Placement) Remove(id int) bool {
	ship, ok := p.fleet.Ship(id)
	if !ok {
		return false
	}
	if _, placed := p.origins[id]; !placed {
		return false
	}
	p.board.Remove(id)
	delete(p.origins, id)
	p.counter.Return(ship.Size)
	return true
}

// Rotate flips the ship's orientation around its origin. A placed ship that no longer fits
// keeps its previous orientation and Rotate returns false.
func (p *Placement) Rotate(id int) bool {
	ship, ok := p.fleet.Ship(id)
	if !ok {
		return false
	}
	origin, placed := p.origins[id]
	if !placed || ship.Size == 1 {
		p.fleet.SetOrientation(id, ship.Orientation.Flip())
		return true
	}

	p.board.Remove(id)
	rotated := ship
	rotated.Orientation = ship.Orientation.Flip()
	if p.board.Place(rotated, origin) {
		p.fleet.SetOrientation(id, rotated.Orientation)
		return true
	}
	p.board.Place(ship, origin)
	return false
}

// Apply replaces the whole setup with a generated layout.
func (p *Placement) Apply(layout *Layout) {
	p.board = layout.Board.Copy()
	p.fleet = layout.Fleet.Copy()
	p.origins = layout.Origins()
	p.counter.SetAllPlaced()
}

// Reset clears the board and returns every ship to the pool.
func (p *Placement) Reset() {
	p.board.Clear()
	p.origins = make(map[int]Coordinate)
	p.counter.SetAllRemaining()
}

// Ready reports whether every ship is on the board.
func (p *Placement) Ready() bool {
	return len(p.origins) == p.fleet.Len()
}

// Layout snapshots the current setup.
func (p *Placement) Layout() *Layout {
	return &Layout{Board: p.board.Copy(), Fleet: p.fleet.Copy()}
}

// NewLayout places every ship of fleet at the given origin, failing on the first illegal one.
func NewLayout(size int, fleet *Fleet, origins map[int]Coordinate) (*Layout, error) {
	board := NewBoard(size)
	for _, ship := range fleet.Ships() {
		origin, ok := origins[ship.ID]
		if !ok {
			return nil, fmt.Errorf("no origin for %s", ship)
		}
		if !board.Place(ship, origin) {
			return nil, fmt.Errorf("cannot place %s at %s", ship, origin)
		}
	}
	return &Layout{Board: board, Fleet: fleet.Copy()}, nil
}
