package game

import "fmt"

// Orientation determines along which axis a ship extends from its origin.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Flip returns the other orientation.
func (o Orientation) Flip() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

// Ship is pure data; where it sits is recorded by the board that holds its id.
type Ship struct {
	ID          int         `json:"id"`
	Size        int         `json:"size"`
	Orientation Orientation `json:"orientation"`
}

// Footprint lists the cells the ship occupies when its first cell is origin.
func (s Ship) Footprint(origin Coordinate) []Coordinate {
	cells := make([]Coordinate, s.Size)
	for i := 0; i < s.Size; i++ {
		cells[i] = s.cellAt(origin, i)
	}
	return cells
}

func (s Ship) cellAt(origin Coordinate, offset int) Coordinate {
	if s.Orientation == Vertical {
		return origin.Offset(0, offset)
	}
	return origin.Offset(offset, 0)
}

func (s Ship) String() string {
	return fmt.Sprintf("ship#%d(size=%d,%s)", s.ID, s.Size, s.Orientation)
}

// Halo returns the cells adjacent to the ship's footprint, excluding the footprint itself,
// clipped to a size×size board. These cells are guaranteed empty once the ship is placed.
func Halo(origin Coordinate, ship Ship, size int) []Coordinate {
	footprint := ship.Footprint(origin)
	occupied := make(map[Coordinate]bool, len(footprint))
	for _, c := range footprint {
		occupied[c] = true
	}

	seen := make(map[Coordinate]bool)
	var halo []Coordinate
	for _, c := range footprint {
		for _, n := range Around(c, size) {
			if occupied[n] || seen[n] {
				continue
			}
			seen[n] = true
			halo = append(halo, n)
		}
	}
	return halo
}
