package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"battleship/agent"
	"battleship/communication/client"
	"battleship/communication/server"
	"battleship/config"
	"battleship/engine"
	"battleship/experiments"
	"battleship/experiments/metrics"
	"battleship/gamemaster"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Msgf("failed to load config: %v", err)
	}
	zerolog.SetGlobalLevel(cfg.Level())

	command := "play"
	args := os.Args[1:]
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch command {
	case "play":
		err = play(ctx, cfg, args)
	case "serve":
		err = serve(ctx, cfg, args)
	case "experiment":
		err = experiment(ctx, cfg, args)
	default:
		err = fmt.Errorf("unknown command %q (want play, serve or experiment)", command)
	}
	if err != nil {
		log.Fatal().Msgf("%s: %v", command, err)
	}
}

func newGameMaster(cfg *config.Config, difficulty agent.Difficulty, rng *rand.Rand) *gamemaster.GameMaster {
	minDelay, maxDelay := cfg.Delays()
	return gamemaster.NewGameMaster(cfg.Rules(),
		gamemaster.WithDifficulty(difficulty),
		gamemaster.WithMissPolicy(cfg.MissPolicy()),
		gamemaster.WithDelay(minDelay, maxDelay),
		gamemaster.WithRand(rng),
	)
}

func play(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	difficulty := fs.String("difficulty", string(cfg.Difficulty()), "Bot difficulty (easy or normal)")
	text := fs.Bool("text", false, "Type shots line by line instead of clicking the board")
	fs.Parse(args)

	d, err := agent.ParseDifficulty(*difficulty)
	if err != nil {
		return err
	}

	gm := newGameMaster(cfg, d, cfg.Rand())
	var status engine.Status
	if *text || cfg.BoardSize > 10 {
		status, err = client.NewConsole(os.Stdin, os.Stdout, cfg.BoardSize).Play(ctx, gm, metrics.NewCollector())
	} else {
		status, err = client.NewTerminal(cfg.BoardSize).Play(ctx, gm, metrics.NewCollector())
	}
	if errors.Is(err, client.ErrQuit) {
		log.Info().Msg("bye")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Msgf("game finished: %s", status)
	return nil
}

func serve(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Addr, "Listen address")
	fs.Parse(args)

	nextRand := cfg.RandFactory()
	s := server.NewServer(func() *gamemaster.GameMaster {
		return newGameMaster(cfg, cfg.Difficulty(), nextRand())
	}, metrics.NewPrometheusCollector)

	mux := s.Handler()
	mux.Handle("/metrics", promhttp.Handler())
	httpServer := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("listening on %s (game at /ws, metrics at /metrics)", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func experiment(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	games := fs.Int("games", cfg.ExperimentGames, "Games per bot difficulty")
	dir := fs.String("dir", cfg.ExperimentDir, "Directory for CSV results")
	fs.Parse(args)

	out, _, err := experiments.RunDifficultyExperiment(ctx, cfg.Rules(), *games, *dir, cfg.Rand())
	if err != nil {
		return err
	}
	log.Info().Msgf("results written to %s", out)
	return nil
}
