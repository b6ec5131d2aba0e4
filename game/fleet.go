package game

// Fleet is the ordered set of ships owned by one side. Per-size counts never change after
// construction; only orientations do, during setup.
type Fleet struct {
	ships []Ship
}

// NewFleet builds the fleet described by rules, largest ships first, ids starting at 1.
func NewFleet(rules Rules) *Fleet {
	f := &Fleet{}
	id := 1
	for size := rules.MaxShipSize(); size >= 1; size-- {
		for i := 0; i < rules.ShipCount(size); i++ {
			f.ships = append(f.ships, Ship{ID: id, Size: size, Orientation: Horizontal})
			id++
		}
	}
	return f
}

// NewFleetOf wraps an explicit ship list.
func NewFleetOf(ships []Ship) *Fleet {
	f := &Fleet{ships: make([]Ship, len(ships))}
	copy(f.ships, ships)
	return f
}

// Ships returns a copy of the ships in fleet order.
func (f *Fleet) Ships() []Ship {
	ships := make([]Ship, len(f.ships))
	copy(ships, f.ships)
	return ships
}

func (f *Fleet) Len() int {
	return len(f.ships)
}

// Ship looks a ship up by id.
func (f *Fleet) Ship(id int) (Ship, bool) {
	i := f.index(id)
	if i < 0 {
		return Ship{}, false
	}
	return f.ships[i], true
}

// SetOrientation changes the orientation of the ship with the given id.
func (f *Fleet) SetOrientation(id int, o Orientation) bool {
	i := f.index(id)
	if i < 0 {
		return false
	}
	f.ships[i].Orientation = o
	return true
}

// CountBySize tallies the fleet per ship size.
func (f *Fleet) CountBySize() map[int]int {
	counts := make(map[int]int)
	for _, s := range f.ships {
		counts[s.Size]++
	}
	return counts
}

func (f *Fleet) Copy() *Fleet {
	return NewFleetOf(f.ships)
}

func (f *Fleet) index(id int) int {
	for i, s := range f.ships {
		if s.ID == id {
			return i
		}
	}
	return -1
}
