package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vokabelnetz/engine/internal/engine"
)

// Config holds all configuration for the application.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Algorithm AlgorithmConfig `mapstructure:"algorithm"`
	Streak    StreakConfig    `mapstructure:"streak"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AlgorithmConfig holds the SM-2 and Elo tuning constants.
type AlgorithmConfig struct {
	MinEaseFactor        float64 `mapstructure:"min_ease_factor"`
	MaxEaseFactor        float64 `mapstructure:"max_ease_factor"`
	DefaultEaseFactor    float64 `mapstructure:"default_ease_factor"`
	MaxIntervalDays      int     `mapstructure:"max_interval_days"`
	LearnedThresholdDays int     `mapstructure:"learned_threshold_days"`
	KFactor              int     `mapstructure:"k_factor"`
	MinRating            int     `mapstructure:"min_rating"`
	MaxRating            int     `mapstructure:"max_rating"`
	DefaultRating        int     `mapstructure:"default_rating"`
	MatchTolerance       int     `mapstructure:"match_tolerance"`
}

// StreakConfig holds the streak continuity constants.
type StreakConfig struct {
	FreezeMilestoneDays int    `mapstructure:"freeze_milestone_days"`
	MaxFreezes          int    `mapstructure:"max_freezes"`
	DefaultTimezone     string `mapstructure:"default_timezone"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "vokabelnetz")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	viper.SetDefault("algorithm.min_ease_factor", 1.3)
	viper.SetDefault("algorithm.max_ease_factor", 5.0)
	viper.SetDefault("algorithm.default_ease_factor", 2.5)
	viper.SetDefault("algorithm.max_interval_days", 365)
	viper.SetDefault("algorithm.learned_threshold_days", 21)
	viper.SetDefault("algorithm.k_factor", 32)
	viper.SetDefault("algorithm.min_rating", 100)
	viper.SetDefault("algorithm.max_rating", 3000)
	viper.SetDefault("algorithm.default_rating", 1000)
	viper.SetDefault("algorithm.match_tolerance", 200)

	viper.SetDefault("streak.freeze_milestone_days", 7)
	viper.SetDefault("streak.max_freezes", 3)
	viper.SetDefault("streak.default_timezone", "Europe/Istanbul")
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Engine projects the algorithm and streak sections onto the engine
// tuning struct.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		MinEaseFactor:        c.Algorithm.MinEaseFactor,
		MaxEaseFactor:        c.Algorithm.MaxEaseFactor,
		DefaultEaseFactor:    c.Algorithm.DefaultEaseFactor,
		MaxIntervalDays:      c.Algorithm.MaxIntervalDays,
		LearnedThresholdDays: c.Algorithm.LearnedThresholdDays,
		KFactor:              c.Algorithm.KFactor,
		MinRating:            c.Algorithm.MinRating,
		MaxRating:            c.Algorithm.MaxRating,
		DefaultRating:        c.Algorithm.DefaultRating,
		MatchTolerance:       c.Algorithm.MatchTolerance,
		FreezeMilestoneDays:  c.Streak.FreezeMilestoneDays,
		MaxFreezes:           c.Streak.MaxFreezes,
		DefaultTimezone:      c.Streak.DefaultTimezone,
	}
}
