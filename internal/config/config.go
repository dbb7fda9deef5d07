package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Ledger drivers
const (
	LedgerMemory = "memory"
	LedgerSQLite = "sqlite"
)

// Split and push rule names
const (
	SplitRuleTenValue = "ten-value"
	SplitRuleSameRank = "same-rank"
	PushRuleReturn    = "return"
	PushRuleForfeit   = "forfeit"
)

// Config holds all configuration for the application
type Config struct {
	// Table configuration
	StartingBalance  int64
	MinBet           int64
	BetStep          int64
	DefaultBet       int64
	SplitRule        string
	PushRule         string
	DoubleAfterSplit bool
	DealerStandsOn   int

	// Ledger
	LedgerDriver string
	SQLiteDSN    string

	// Presentation
	AssetsDir string
	Pacing    time.Duration

	// Environment
	Environment string // "development" or "production"
	LogLevel    string
}

var defaults = map[string]interface{}{
	"ENVIRONMENT":        "development",
	"LOG_LEVEL":          "warn",
	"STARTING_BALANCE":   100,
	"MIN_BET":            5,
	"BET_STEP":           5,
	"DEFAULT_BET":        10,
	"SPLIT_RULE":         SplitRuleTenValue,
	"PUSH_RULE":          PushRuleReturn,
	"DOUBLE_AFTER_SPLIT": true,
	"DEALER_STANDS_ON":   17,
	"LEDGER_DRIVER":      LedgerMemory,
	"SQLITE_DSN":         "file:blackjack?mode=memory&cache=shared",
	"ASSETS_DIR":         "",
	"PACING_MS":          400,
}

// Load reads the configuration from an optional .env file and the environment
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		StartingBalance:  v.GetInt64("STARTING_BALANCE"),
		MinBet:           v.GetInt64("MIN_BET"),
		BetStep:          v.GetInt64("BET_STEP"),
		DefaultBet:       v.GetInt64("DEFAULT_BET"),
		SplitRule:        strings.ToLower(v.GetString("SPLIT_RULE")),
		PushRule:         strings.ToLower(v.GetString("PUSH_RULE")),
		DoubleAfterSplit: v.GetBool("DOUBLE_AFTER_SPLIT"),
		DealerStandsOn:   v.GetInt("DEALER_STANDS_ON"),
		LedgerDriver:     strings.ToLower(v.GetString("LEDGER_DRIVER")),
		SQLiteDSN:        v.GetString("SQLITE_DSN"),
		AssetsDir:        v.GetString("ASSETS_DIR"),
		Pacing:           time.Duration(v.GetInt("PACING_MS")) * time.Millisecond,
		Environment:      v.GetString("ENVIRONMENT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all values are usable
func (c *Config) validate() error {
	if c.MinBet <= 0 {
		return fmt.Errorf("MIN_BET must be positive")
	}
	if c.BetStep <= 0 {
		return fmt.Errorf("BET_STEP must be positive")
	}
	if c.DefaultBet < c.MinBet {
		return fmt.Errorf("DEFAULT_BET must be at least MIN_BET")
	}
	if c.StartingBalance < 0 {
		return fmt.Errorf("STARTING_BALANCE cannot be negative")
	}
	if c.DealerStandsOn < 2 || c.DealerStandsOn > 21 {
		return fmt.Errorf("DEALER_STANDS_ON must be between 2 and 21")
	}
	if c.Pacing < 0 {
		return fmt.Errorf("PACING_MS cannot be negative")
	}
	switch c.SplitRule {
	case SplitRuleTenValue, SplitRuleSameRank:
	default:
		return fmt.Errorf("unknown SPLIT_RULE %q", c.SplitRule)
	}
	switch c.PushRule {
	case PushRuleReturn, PushRuleForfeit:
	default:
		return fmt.Errorf("unknown PUSH_RULE %q", c.PushRule)
	}
	switch c.LedgerDriver {
	case LedgerMemory:
	case LedgerSQLite:
		if c.SQLiteDSN == "" {
			return fmt.Errorf("SQLITE_DSN is required for the sqlite ledger")
		}
	default:
		return fmt.Errorf("unknown LEDGER_DRIVER %q", c.LedgerDriver)
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
