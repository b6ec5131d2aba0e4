package game

// ShotStatus is the outcome of a single shot.
type ShotStatus int

const (
	Miss ShotStatus = iota
	Hit
	Destroyed
)

func (s ShotStatus) String() string {
	switch s {
	case Hit:
		return "hit"
	case Destroyed:
		return "destroyed"
	default:
		return "miss"
	}
}

// ShotResult reports what a shot did. Ship is set for Hit and Destroyed, Origin only for Destroyed.
type ShotResult struct {
	Status ShotStatus  `json:"status"`
	Ship   *Ship       `json:"ship,omitempty"`
	Origin *Coordinate `json:"origin,omitempty"`
}

// Footprint returns the destroyed ship's cells, or nil for any other result.
func (r ShotResult) Footprint() []Coordinate {
	if r.Status != Destroyed || r.Ship == nil || r.Origin == nil {
		return nil
	}
	return r.Ship.Footprint(*r.Origin)
}

// Halo returns the cells around a destroyed ship, or nil for any other result.
func (r ShotResult) Halo(size int) []Coordinate {
	if r.Status != Destroyed || r.Ship == nil || r.Origin == nil {
		return nil
	}
	return Halo(*r.Origin, *r.Ship, size)
}

// Resolver applies shots to one side's layout and tracks damage. It does not guard against
// repeated shots; that is the shooter's bookkeeping.
type Resolver struct {
	board     *Board
	fleet     *Fleet
	hits      map[int]int // ship id -> hits taken
	destroyed int
}

func NewResolver(layout *Layout) *Resolver {
	r := &Resolver{
		board: layout.Board,
		fleet: layout.Fleet,
		hits:  make(map[int]int, layout.Fleet.Len()),
	}
	for _, s := range layout.Fleet.Ships() {
		r.hits[s.ID] = 0
	}
	return r
}

// Resolve shoots at c.
func (r *Resolver) Resolve(c Coordinate) ShotResult {
	id, ok := r.board.Get(c)
	if !ok || id == Empty {
		return ShotResult{Status: Miss}
	}
	ship, ok := r.fleet.Ship(id)
	if !ok {
		return ShotResult{Status: Miss}
	}

	r.hits[id]++
	if r.hits[id] != ship.Size {
		return ShotResult{Status: Hit, Ship: &ship}
	}

	r.destroyed++
	origin, _ := r.board.Origin(id)
	return ShotResult{Status: Destroyed, Ship: &ship, Origin: &origin}
}

// Destroyed counts the ships sunk so far.
func (r *Resolver) Destroyed() int {
	return r.destroyed
}

func (r *Resolver) AllDestroyed() bool {
	return r.destroyed == r.fleet.Len()
}

// Hits returns how many times the ship with id has been hit.
func (r *Resolver) Hits(id int) int {
	return r.hits[id]
}
