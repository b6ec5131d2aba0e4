package metrics

import (
	"battleship/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ShotsTotal counts shots by shooter and outcome.
	ShotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "battleship_shots_total",
		Help: "Total number of shots by shooter and outcome",
	}, []string{"shooter", "status"})

	// GamesTotal counts finished games by bot difficulty and winner.
	GamesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "battleship_games_total",
		Help: "Total number of finished games",
	}, []string{"difficulty", "winner"})

	// GameDuration records how long finished games lasted.
	GameDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "battleship_game_duration_seconds",
		Help:    "Game duration in seconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"difficulty"})

	// ActiveGames is the gauge of games started but not yet completed.
	ActiveGames = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "battleship_active_games",
		Help: "Number of games in progress",
	})
)

// prometheusCollector records into the process-wide prometheus metrics on top of the per-game collector.
type prometheusCollector struct {
	Collector
	difficulty string
	active     bool
}

func NewPrometheusCollector() Collector {
	return &prometheusCollector{Collector: NewCollector()}
}

func (m *prometheusCollector) Start(gameID, difficulty string) {
	m.Collector.Start(gameID, difficulty)
	m.difficulty = difficulty
	if !m.active {
		ActiveGames.Inc()
		m.active = true
	}
}

func (m *prometheusCollector) AddShot(shooter Shooter, cell game.Coordinate, status game.ShotStatus) {
	m.Collector.AddShot(shooter, cell, status)
	ShotsTotal.WithLabelValues(string(shooter), status.String()).Inc()
}

func (m *prometheusCollector) Complete(winner string) GameMetric {
	metric := m.Collector.Complete(winner)
	if m.active {
		ActiveGames.Dec()
		m.active = false
	}
	if winner != "" {
		GamesTotal.WithLabelValues(m.difficulty, winner).Inc()
		GameDuration.WithLabelValues(m.difficulty).Observe(metric.Duration.Seconds())
	}
	return metric
}

// Abort stops counting the game as active without recording a winner.
func (m *prometheusCollector) Abort() {
	m.Collector.Abort()
	if m.active {
		ActiveGames.Dec()
		m.active = false
	}
}
