// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Games    GamesConfig    `mapstructure:"games"`
	Arcade   ArcadeConfig   `mapstructure:"arcade"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// GamesConfig selects which games the registry offers.
type GamesConfig struct {
	// Enabled lists game IDs to register. Empty means every game.
	Enabled []string `mapstructure:"enabled"`

	// DefaultDifficulty is used when a caller does not pick one. Games
	// that do not offer it fall back to their first difficulty.
	DefaultDifficulty string `mapstructure:"default_difficulty"`
}

// ArcadeConfig tunes the self-play exerciser.
type ArcadeConfig struct {
	// Seed feeds the match RNGs. Zero means seed from the clock.
	Seed int64 `mapstructure:"seed"`

	// Rounds is how many matches to run per registered game.
	Rounds int `mapstructure:"rounds"`

	// LockTimeout bounds how long a session mutation may wait.
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and uppercase,
	// e.g. DATABASE_HOST, ARCADE_ROUNDS.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars can provide all config.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "arcade")
	v.SetDefault("database.name", "arcade")
	v.SetDefault("database.pool_size", 10)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Game defaults
	v.SetDefault("games.default_difficulty", "medium")

	// Exerciser defaults
	v.SetDefault("arcade.rounds", 1)
	v.SetDefault("arcade.lock_timeout", "5s")
}

// IsEnabled checks if a game ID should be registered.
// An empty enabled list means every game is registered.
func (c *Config) IsEnabled(gameID string) bool {
	if len(c.Games.Enabled) == 0 {
		return true
	}
	for _, id := range c.Games.Enabled {
		if id == gameID {
			return true
		}
	}
	return false
}
