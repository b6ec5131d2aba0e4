package game

// Empty marks a cell that holds no ship. Ship ids are always positive.
const Empty = 0

// Board is the N×N matrix of ship ids for one side.
type Board struct {
	size  int
	cells [][]int // [row][col]
}

// NewBoard returns a size×size board with every cell empty.
func NewBoard(size int) *Board {
	b := &Board{size: size}
	b.cells = emptyCells(size)
	return b
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(c Coordinate) bool {
	return inBounds(c, b.size)
}

// Get returns the ship id at c (Empty when the cell is free). ok is false when c is off the
// board, so neighbour probes can treat such cells as unusable without branching on errors.
func (b *Board) Get(c Coordinate) (id int, ok bool) {
	if !b.InBounds(c) {
		return Empty, false
	}
	return b.cells[c.Row][c.Col], true
}

// Set writes id into c. Callers must bounds-check first.
func (b *Board) Set(c Coordinate, id int) {
	b.cells[c.Row][c.Col] = id
}

// Clear resets every cell to Empty.
func (b *Board) Clear() {
	b.cells = emptyCells(b.size)
}

// Origin returns the first cell holding id in row-major order.
func (b *Board) Origin(id int) (Coordinate, bool) {
	for row := range b.cells {
		for col, v := range b.cells[row] {
			if v == id {
				return Coordinate{Col: col, Row: row}, true
			}
		}
	}
	return Coordinate{}, false
}

// Cells lists every cell holding id in row-major order.
func (b *Board) Cells(id int) []Coordinate {
	var cells []Coordinate
	for row := range b.cells {
		for col, v := range b.cells[row] {
			if v == id {
				cells = append(cells, Coordinate{Col: col, Row: row})
			}
		}
	}
	return cells
}

// Occupied lists every non-empty cell in row-major order.
func (b *Board) Occupied() []Coordinate {
	var cells []Coordinate
	for row := range b.cells {
		for col, v := range b.cells[row] {
			if v != Empty {
				cells = append(cells, Coordinate{Col: col, Row: row})
			}
		}
	}
	return cells
}

// CanPlace reports whether ship may start at origin: every footprint cell must be on the board
// and empty, and no ship may sit in the 8-neighbourhood of any footprint cell.
func (b *Board) CanPlace(ship Ship, origin Coordinate) bool {
	for _, cell := range ship.Footprint(origin) {
		if id, ok := b.Get(cell); !ok || id != Empty {
			return false
		}
		for _, n := range Around(cell, b.size) {
			if id, _ := b.Get(n); id != Empty {
				return false
			}
		}
	}
	return true
}

// Place writes the ship's footprint when the placement is legal.
func (b *Board) Place(ship Ship, origin Coordinate) bool {
	if !b.CanPlace(ship, origin) {
		return false
	}
	for _, cell := range ship.Footprint(origin) {
		b.Set(cell, ship.ID)
	}
	return true
}

// Remove clears every cell holding id and reports whether any was found.
func (b *Board) Remove(id int) bool {
	found := false
	for row := range b.cells {
		for col, v := range b.cells[row] {
			if v == id {
				b.cells[row][col] = Empty
				found = true
			}
		}
	}
	return found
}

func (b *Board) Copy() *Board {
	cp := NewBoard(b.size)
	for row := range b.cells {
		copy(cp.cells[row], b.cells[row])
	}
	return cp
}

func emptyCells(size int) [][]int {
	cells := make([][]int, size)
	for i := range cells {
		cells[i] = make([]int, size)
	}
	return cells
}

// ShotGrid records which cells of the opponent's board a shooter has already targeted.
type ShotGrid struct {
	size      int
	shot      [][]bool
	remaining int
}

func NewShotGrid(size int) *ShotGrid {
	g := &ShotGrid{size: size}
	g.Reset()
	return g
}

func (g *ShotGrid) Size() int {
	return g.size
}

// CanShoot is false for targeted cells and for cells off the board.
func (g *ShotGrid) CanShoot(c Coordinate) bool {
	return inBounds(c, g.size) && !g.shot[c.Row][c.Col]
}

// Mark records c as targeted. Off-board cells are ignored.
func (g *ShotGrid) Mark(c Coordinate) {
	if !g.CanShoot(c) {
		return
	}
	g.shot[c.Row][c.Col] = true
	g.remaining--
}

// Remaining counts the cells not yet targeted.
func (g *ShotGrid) Remaining() int {
	return g.remaining
}

// Untargeted lists the cells not yet targeted in row-major order.
func (g *ShotGrid) Untargeted() []Coordinate {
	cells := make([]Coordinate, 0, g.remaining)
	for row := range g.shot {
		for col, v := range g.shot[row] {
			if !v {
				cells = append(cells, Coordinate{Col: col, Row: row})
			}
		}
	}
	return cells
}

func (g *ShotGrid) Reset() {
	g.shot = make([][]bool, g.size)
	for i := range g.shot {
		g.shot[i] = make([]bool, g.size)
	}
	g.remaining = g.size * g.size
}
