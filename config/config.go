// Package config loads runtime settings from environment variables and an
// optional config file, via viper. Everything has a default; the solver
// runs fine with a zero-configuration environment.
package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config is the runtime configuration shared by the shell and the worker.
type Config struct {
	MaxDepth        int
	TimeBudget      time.Duration
	BaseBranchLimit int
	MaxBranchLimit  int
	RecycleCap      int
	// WeightPreset selects the heuristic weights: "aggressive" (default)
	// or "conservative".
	WeightPreset string
	DrawMode     int
	Debug        bool
}

// Load reads configuration from the environment (KLONDIKE_ prefix) and an
// optional klondike.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("klondike")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("max-depth", 180)
	v.SetDefault("time-budget", "8s")
	v.SetDefault("base-branch-limit", 4)
	v.SetDefault("max-branch-limit", 10)
	v.SetDefault("recycle-cap", 3)
	v.SetDefault("weight-preset", "aggressive")
	v.SetDefault("draw-mode", 1)
	v.SetDefault("debug", false)

	v.SetConfigName("klondike")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("loaded config file")
	}

	c := &Config{
		MaxDepth:        v.GetInt("max-depth"),
		TimeBudget:      v.GetDuration("time-budget"),
		BaseBranchLimit: v.GetInt("base-branch-limit"),
		MaxBranchLimit:  v.GetInt("max-branch-limit"),
		RecycleCap:      v.GetInt("recycle-cap"),
		WeightPreset:    v.GetString("weight-preset"),
		DrawMode:        v.GetInt("draw-mode"),
		Debug:           v.GetBool("debug"),
	}
	if c.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return c, nil
}
