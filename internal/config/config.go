package config

import (
	"errors"
	"os"
	"time"

	"blackjack-server/internal/rng"
	"blackjack-server/internal/util"
	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/store"
	"blackjack-server/pkg/telemetry"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// LogConfig configures logrus
type LogConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AccessLog bool   `yaml:"accessLog" envconfig:"access_log"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"corsOrigins" envconfig:"cors_origins"`

	// JWTSecret signs the bearer tokens required to play, empty for open play
	JWTSecret     string `yaml:"jwtSecret" envconfig:"jwt_secret"`
	TokenTTLHours int    `yaml:"tokenTtlHours" envconfig:"token_ttl_hours"`
}

// TokenTTL returns the lifetime of a signed token
func (s ServerConfig) TokenTTL() time.Duration {
	return time.Duration(s.TokenTTLHours) * time.Hour
}

// StoreConfig configures the wallet and history database
type StoreConfig struct {
	Driver         string `yaml:"driver"`
	DSN            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	WalletID       string `yaml:"walletId" envconfig:"wallet_id"`
}

// TableConfig configures the game
type TableConfig struct {
	Variant         string `yaml:"variant"`
	StartingChips   int    `yaml:"startingChips" envconfig:"starting_chips"`
	RescueChips     int    `yaml:"rescueChips" envconfig:"rescue_chips"`
	HistoryLimit    int    `yaml:"historyLimit" envconfig:"history_limit"`
	MinBet          int    `yaml:"minBet" envconfig:"min_bet"`
	MaxBet          int    `yaml:"maxBet" envconfig:"max_bet"`
	DefaultBet      int    `yaml:"defaultBet" envconfig:"default_bet"`
	AllowInsurance  bool   `yaml:"allowInsurance" envconfig:"allow_insurance"`
	AllowSplit      bool   `yaml:"allowSplit" envconfig:"allow_split"`
	AllowDoubleDown bool   `yaml:"allowDoubleDown" envconfig:"allow_double_down"`
}

// RNGConfig configures the random number generators
type RNGConfig struct {
	// Kind is "crypto" or "seeded"
	Kind string `yaml:"kind"`

	// Seed is used by the seeded kind, 0 for the current time
	Seed int64 `yaml:"seed"`
}

// Config provides configuration for the blackjack server
type Config struct {
	loaded bool
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Table  TableConfig  `yaml:"table"`
	RNG    RNGConfig    `yaml:"rng"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	opts := blackjack.DefaultOptions()

	return Config{
		Log: LogConfig{
			Level:     "info",
			Format:    "text",
			AccessLog: true,
		},
		Server: ServerConfig{
			Addr:          ":5000",
			CORSOrigins:   []string{"*"},
			TokenTTLHours: 24 * 30,
		},
		Store: StoreConfig{
			Driver:         store.DriverSQLite,
			DSN:            "file:blackjack.db?_pragma=foreign_keys(1)",
			MigrationsPath: "sql",
			WalletID:       "default",
		},
		RNG: RNGConfig{
			Kind: rng.KindCrypto,
		},
		Table: TableConfig{
			Variant:         "blackjack",
			StartingChips:   economy.DefaultStartingChips,
			RescueChips:     economy.DefaultRescueChips,
			HistoryLimit:    telemetry.DefaultHistoryLimit,
			MinBet:          opts.MinBet,
			MaxBet:          opts.MaxBet,
			DefaultBet:      opts.DefaultBet,
			AllowInsurance:  opts.AllowInsurance,
			AllowSplit:      opts.AllowSplit,
			AllowDoubleDown: opts.AllowDoubleDown,
		},
	}
}

// GameOptions returns the table options for the game
func (t TableConfig) GameOptions() blackjack.Options {
	return blackjack.Options{
		MinBet:          t.MinBet,
		MaxBet:          t.MaxBet,
		DefaultBet:      t.DefaultBet,
		AllowInsurance:  t.AllowInsurance,
		AllowSplit:      t.AllowSplit,
		AllowDoubleDown: t.AllowDoubleDown,
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; the defaults are used instead.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("BJ_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("bj", &cfg); err != nil {
		return err
	}

	if err := cfg.Table.GameOptions().Validate(); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
