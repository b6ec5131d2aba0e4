package metrics

import (
	"sync"
	"time"

	"battleship/game"
)

type Shooter string

const (
	Human Shooter = "human"
	Bot   Shooter = "bot"
)

type ShotMetric struct {
	Step    int
	Shooter Shooter
	Cell    game.Coordinate
	Status  game.ShotStatus
}

type GameMetric struct {
	GameID           string
	Difficulty       string
	Winner           string // Empty while the game is unfinished
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
	HumanShots       int
	HumanHits        int // Hits and kills
	BotShots         int
	BotHits          int
	LongestBotStreak int // Most consecutive bot hits within one turn
	Shots            []ShotMetric
}

type Collector interface {
	Start(gameID, difficulty string)
	AddShot(shooter Shooter, cell game.Coordinate, status game.ShotStatus)
	Complete(winner string) GameMetric
	// Abort ends a game that was abandoned before anyone won.
	Abort()
}

type collector struct {
	mu        sync.Mutex
	metric    GameMetric
	botStreak int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(gameID, difficulty string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metric = GameMetric{
		GameID:     gameID,
		Difficulty: difficulty,
		StartTime:  time.Now(),
	}
	m.botStreak = 0
}

func (m *collector) AddShot(shooter Shooter, cell game.Coordinate, status game.ShotStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hit := status != game.Miss
	switch shooter {
	case Human:
		m.metric.HumanShots++
		if hit {
			m.metric.HumanHits++
		}
	case Bot:
		m.metric.BotShots++
		if hit {
			m.botStreak++
			m.metric.LongestBotStreak = max(m.metric.LongestBotStreak, m.botStreak)
			m.metric.BotHits++
		} else {
			m.botStreak = 0
		}
	}
	m.metric.Shots = append(m.metric.Shots, ShotMetric{
		Step:    len(m.metric.Shots) + 1,
		Shooter: shooter,
		Cell:    cell,
		Status:  status,
	})
}

func (m *collector) Complete(winner string) GameMetric {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metric.Winner = winner
	m.metric.EndTime = time.Now()
	m.metric.Duration = m.metric.EndTime.Sub(m.metric.StartTime)
	metric := m.metric
	metric.Shots = append([]ShotMetric(nil), m.metric.Shots...)
	return metric
}

func (m *collector) Abort() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metric.EndTime = time.Now()
	m.metric.Duration = m.metric.EndTime.Sub(m.metric.StartTime)
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(gameID, difficulty string)                                       {}
func (m *dummyCollector) AddShot(shooter Shooter, cell game.Coordinate, status game.ShotStatus) {}
func (m *dummyCollector) Complete(winner string) GameMetric                                     { return GameMetric{} }
func (m *dummyCollector) Abort()                                                                {}
