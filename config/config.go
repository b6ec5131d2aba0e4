// Package config loads game settings from battleship.yml, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"battleship/agent"
	"battleship/game"
	"battleship/meta"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/exp/rand"
)

// Config holds settings loaded from file or environment variables.
type Config struct {
	BoardSize       int    `mapstructure:"BOARD_SIZE"`
	ShipsSize1      int    `mapstructure:"SHIPS_SIZE_1"`
	ShipsSize2      int    `mapstructure:"SHIPS_SIZE_2"`
	ShipsSize3      int    `mapstructure:"SHIPS_SIZE_3"`
	ShipsSize4      int    `mapstructure:"SHIPS_SIZE_4"`
	BotDifficulty   string `mapstructure:"BOT_DIFFICULTY"`
	BotMinDelayMS   int    `mapstructure:"BOT_MIN_DELAY_MS"`
	BotMaxDelayMS   int    `mapstructure:"BOT_MAX_DELAY_MS"`
	BotMissPolicy   string `mapstructure:"BOT_MISS_POLICY"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	Addr            string `mapstructure:"ADDR"`
	Seed            uint64 `mapstructure:"SEED"` // 0 seeds from the clock
	ExperimentGames int    `mapstructure:"EXPERIMENT_GAMES"`
	ExperimentDir   string `mapstructure:"EXPERIMENT_DIR"`
}

// LoadConfig reads .env (if any) into the environment, then battleship.yml, then the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("battleship")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	viper.SetDefault("BOARD_SIZE", meta.BOARD_SIZE)
	viper.SetDefault("SHIPS_SIZE_1", 4)
	viper.SetDefault("SHIPS_SIZE_2", 3)
	viper.SetDefault("SHIPS_SIZE_3", 2)
	viper.SetDefault("SHIPS_SIZE_4", 1)
	viper.SetDefault("BOT_DIFFICULTY", string(agent.Normal))
	viper.SetDefault("BOT_MIN_DELAY_MS", meta.MIN_BOT_DELAY_MS)
	viper.SetDefault("BOT_MAX_DELAY_MS", meta.MAX_BOT_DELAY_MS)
	viper.SetDefault("BOT_MISS_POLICY", string(agent.IgnoreMisses))
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ADDR", ":8080")
	viper.SetDefault("SEED", 0)
	viper.SetDefault("EXPERIMENT_GAMES", 100)
	viper.SetDefault("EXPERIMENT_DIR", "experiments/results")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate rejects settings no game could be started with.
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return err
	}
	if _, err := agent.ParseDifficulty(c.BotDifficulty); err != nil {
		return err
	}
	if _, err := agent.ParseMissPolicy(c.BotMissPolicy); err != nil {
		return err
	}
	if c.BotMinDelayMS < 0 || c.BotMaxDelayMS < c.BotMinDelayMS {
		return fmt.Errorf("bot delay must satisfy 0 <= BOT_MIN_DELAY_MS <= BOT_MAX_DELAY_MS, got %d..%d",
			c.BotMinDelayMS, c.BotMaxDelayMS)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.ExperimentGames < 1 {
		return errors.New("EXPERIMENT_GAMES must be positive")
	}
	if c.Addr == "" {
		return errors.New("ADDR is required")
	}
	return nil
}

func (c *Config) Rules() *game.StandardRules {
	return &game.StandardRules{
		Size: c.BoardSize,
		Counts: map[int]int{
			1: c.ShipsSize1,
			2: c.ShipsSize2,
			3: c.ShipsSize3,
			4: c.ShipsSize4,
		},
	}
}

// Difficulty assumes a validated config.
func (c *Config) Difficulty() agent.Difficulty {
	d, _ := agent.ParseDifficulty(c.BotDifficulty)
	return d
}

func (c *Config) MissPolicy() agent.MissPolicy {
	p, _ := agent.ParseMissPolicy(c.BotMissPolicy)
	return p
}

func (c *Config) Delays() (minDelay, maxDelay time.Duration) {
	return time.Duration(c.BotMinDelayMS) * time.Millisecond, time.Duration(c.BotMaxDelayMS) * time.Millisecond
}

func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Rand returns a generator seeded from SEED, or from the clock when SEED is 0.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// RandFactory hands out independent generators seeded from a single Rand.
// It is safe for concurrent use.
func (c *Config) RandFactory() func() *rand.Rand {
	var mu sync.Mutex
	rng := c.Rand()
	return func() *rand.Rand {
		mu.Lock()
		defer mu.Unlock()
		return rand.New(rand.NewSource(rng.Uint64()))
	}
}
