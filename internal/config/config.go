package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"yuquest/internal/mandala"
	"yuquest/internal/storage"
)

// Config is everything tunable from yuquest.yaml or the environment.
type Config struct {
	DBPath string

	DailyUnlockLimit   int
	CompletionCooldown time.Duration
	Adjacency          mandala.Adjacency
	EventRingSize      int
}

// Load reads configuration from the given file (or the default search
// paths when empty), with env-var overrides.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("yuquest")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/yuquest")
	}

	v.SetEnvPrefix("YUQUEST")
	v.AutomaticEnv()

	v.SetDefault("db_path", "")
	v.SetDefault("grid.daily_unlock_limit", 2)
	v.SetDefault("grid.completion_cooldown_minutes", 60)
	v.SetDefault("grid.adjacency", "four")
	v.SetDefault("events.ring_size", 50)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults apply. A file that
		// exists but will not parse is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dbPath := v.GetString("db_path")
	if dbPath == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}

	adj := mandala.AdjacencyOrthogonal
	switch v.GetString("grid.adjacency") {
	case "four", "":
	case "eight":
		adj = mandala.AdjacencyEight
	default:
		return nil, fmt.Errorf("grid.adjacency must be %q or %q", "four", "eight")
	}

	return &Config{
		DBPath:             dbPath,
		DailyUnlockLimit:   v.GetInt("grid.daily_unlock_limit"),
		CompletionCooldown: time.Duration(v.GetInt("grid.completion_cooldown_minutes")) * time.Minute,
		Adjacency:          adj,
		EventRingSize:      v.GetInt("events.ring_size"),
	}, nil
}

// Rules converts the grid policy settings into the engine's rule set.
func (c *Config) Rules() mandala.Rules {
	return mandala.Rules{
		DailyUnlockLimit:   c.DailyUnlockLimit,
		CompletionCooldown: c.CompletionCooldown,
	}
}
