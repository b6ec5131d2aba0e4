package experiments

import (
	"context"
	"fmt"

	"battleship/agent"
	"battleship/engine"
	"battleship/experiments/metrics"
	"battleship/game"
	"battleship/gamemaster"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Difficulties are the bot settings compared by the difficulty experiment.
var Difficulties = []agent.Difficulty{agent.Easy, agent.Normal}

type Summary struct {
	Difficulty  agent.Difficulty
	Games       int
	BotWins     int
	AvgBotShots float64 // Shots the bot needed per game
}

// RunDifficultyExperiment plays games against each bot difficulty, with an easy bot taking the human's
// side, and writes the game and shot records under root. It returns the directory written to.
func RunDifficultyExperiment(ctx context.Context, rules game.Rules, games int, root string, rng *rand.Rand) (string, []Summary, error) {
	name := "difficulty"
	count := 0
	gameRecords := []metrics.GameRecord{}
	shotRecords := []metrics.ShotRecord{}
	summaries := []Summary{}

	log.Info().Msgf("starting %s experiment...", name)

	for di, difficulty := range Difficulties {
		log.Info().Msgf("starting matchup %d of %d against the %s bot...", di+1, len(Difficulties), difficulty)
		summary := Summary{Difficulty: difficulty, Games: games}
		botShots := 0

		for i := 0; i < games; i++ {
			gameMetric, err := runGame(ctx, rules, difficulty, rand.New(rand.NewSource(rng.Uint64())))
			if err != nil {
				return "", nil, fmt.Errorf("game %d against %s bot: %w", i+1, difficulty, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				GameMetric: gameMetric,
			})
			for _, sm := range gameMetric.Shots {
				shotRecords = append(shotRecords, metrics.ShotRecord{
					Game:       count,
					ShotMetric: sm,
				})
			}
			if gameMetric.Winner == string(metrics.Bot) {
				summary.BotWins++
			}
			botShots += gameMetric.BotShots

			log.Debug().Msgf("completed game %d of %d against %s bot with winner: %s", i+1, games, difficulty, gameMetric.Winner)
		}

		if games > 0 {
			summary.AvgBotShots = float64(botShots) / float64(games)
		}
		summaries = append(summaries, summary)
		log.Info().Msgf("%s bot won %d of %d games, %.1f shots on average", difficulty, summary.BotWins, games, summary.AvgBotShots)
	}

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteShotRecords(shotRecords); err != nil {
		return "", nil, fmt.Errorf("failed to write shot records: %w", err)
	}
	log.Info().Msg("stored shot records")

	return writer.Dir(), summaries, nil
}

// runGame plays one game with no pacing delay. The human side is driven by an easy bot.
func runGame(ctx context.Context, rules game.Rules, difficulty agent.Difficulty, rng *rand.Rand) (metrics.GameMetric, error) {
	gm := gamemaster.NewGameMaster(rules,
		gamemaster.WithDifficulty(difficulty),
		gamemaster.WithDelay(0, 0),
		gamemaster.WithRand(rng),
	)
	if err := gm.Randomize(); err != nil {
		return metrics.GameMetric{}, err
	}
	e, err := gm.Start(nil, metrics.NewCollector())
	if err != nil {
		return metrics.GameMetric{}, err
	}

	stand := agent.New(agent.Easy, rules.BoardSize(), agent.WithRand(rand.New(rand.NewSource(rng.Uint64()))))
	for e.Status() == engine.InProgress {
		c, ok := stand.CellToShoot()
		if !ok {
			return metrics.GameMetric{}, engine.ErrAgentExhausted
		}
		result, err := e.TakeHumanShot(c)
		if err != nil {
			return metrics.GameMetric{}, err
		}
		stand.RecordOutcome(c, result)

		if e.BotTurnPending() {
			if _, err := e.RunBotTurn(ctx); err != nil {
				return metrics.GameMetric{}, err
			}
		}
	}
	return e.Result(), nil
}
