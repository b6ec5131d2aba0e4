package game

import (
	"fmt"

	"battleship/meta"
)

type StandardRules struct {
	Size   int
	Counts map[int]int // ship size -> number of ships
}

// NewStandardRules returns the classic 10x10 board with 1x4, 2x3, 3x2 and 4x1 ships.
func NewStandardRules() *StandardRules {
	return &StandardRules{
		Size: meta.BOARD_SIZE,
		Counts: map[int]int{
			4: 1,
			3: 2,
			2: 3,
			1: 4,
		},
	}
}

func (sr *StandardRules) BoardSize() int {
	return sr.Size
}

func (sr *StandardRules) ShipCount(size int) int {
	return sr.Counts[size]
}

func (sr *StandardRules) MaxShipSize() int {
	return meta.MAX_SHIP_SIZE
}

// Validate rejects boards and fleets the engine cannot represent.
func (sr *StandardRules) Validate() error {
	if sr.Size < 1 {
		return fmt.Errorf("board size must be positive, got %d", sr.Size)
	}
	if sr.Size > meta.MAX_BOARD_SIZE {
		return fmt.Errorf("board size %d exceeds %d, columns are named A to Z", sr.Size, meta.MAX_BOARD_SIZE)
	}
	total := 0
	for size, count := range sr.Counts {
		if size < 1 || size > meta.MAX_SHIP_SIZE {
			return fmt.Errorf("ship size %d out of range 1..%d", size, meta.MAX_SHIP_SIZE)
		}
		if count < 0 {
			return fmt.Errorf("negative count %d for ships of size %d", count, size)
		}
		if size > sr.Size && count > 0 {
			return fmt.Errorf("ship of size %d does not fit a %dx%d board", size, sr.Size, sr.Size)
		}
		total += count
	}
	if total == 0 {
		return fmt.Errorf("fleet must contain at least one ship")
	}
	return nil
}
