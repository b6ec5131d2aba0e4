package agent

import (
	"fmt"
	"strings"

	"battleship/game"
)

// Agent picks the cells a computer-controlled side shoots at.
type Agent interface {
	// CellToShoot returns the next cell and marks it targeted. ok is false once every cell has been shot.
	CellToShoot() (c game.Coordinate, ok bool)
	// RecordOutcome feeds back what the shot at c did.
	RecordOutcome(c game.Coordinate, result game.ShotResult)
}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy, nil
	case Normal:
		return Normal, nil
	default:
		return "", fmt.Errorf("unknown difficulty: %q", s)
	}
}

// MissPolicy decides whether misses that land while a ship is being tracked enter the hit history.
type MissPolicy string

const (
	IgnoreMisses MissPolicy = "ignore"
	TrackMisses  MissPolicy = "track"
)

func ParseMissPolicy(s string) (MissPolicy, error) {
	switch MissPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case IgnoreMisses:
		return IgnoreMisses, nil
	case TrackMisses:
		return TrackMisses, nil
	default:
		return "", fmt.Errorf("unknown miss policy: %q", s)
	}
}
