package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate addresses a cell by column and row, both 0-indexed.
type Coordinate struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Offset returns the coordinate shifted by the given deltas.
func (c Coordinate) Offset(dCol, dRow int) Coordinate {
	return Coordinate{Col: c.Col + dCol, Row: c.Row + dRow}
}

// String formats the coordinate as column letter and 1-based row, e.g. "C5".
func (c Coordinate) String() string {
	return fmt.Sprintf("%c%d", 'A'+c.Col, c.Row+1)
}

// ParseCoordinate converts "C5" into Coordinate{Col: 2, Row: 4}. Bounds are the caller's concern.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("invalid coordinate: %q", s)
	}
	colChar := strings.ToUpper(s[:1])[0]
	if colChar < 'A' || colChar > 'Z' {
		return Coordinate{}, fmt.Errorf("invalid column: %c", colChar)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid row: %q", s[1:])
	}
	if row < 1 {
		return Coordinate{}, fmt.Errorf("row out of range: %d", row)
	}
	return Coordinate{Col: int(colChar - 'A'), Row: row - 1}, nil
}

var aroundOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Around returns the up-to-8 neighbours of c that lie on a size×size board.
func Around(c Coordinate, size int) []Coordinate {
	cells := make([]Coordinate, 0, len(aroundOffsets))
	for _, off := range aroundOffsets {
		n := c.Offset(off[0], off[1])
		if inBounds(n, size) {
			cells = append(cells, n)
		}
	}
	return cells
}

// Orthogonal returns the four edge neighbours of c without clipping.
func Orthogonal(c Coordinate) []Coordinate {
	return []Coordinate{
		c.Offset(1, 0),
		c.Offset(-1, 0),
		c.Offset(0, 1),
		c.Offset(0, -1),
	}
}

func inBounds(c Coordinate, size int) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < size && c.Row < size
}
