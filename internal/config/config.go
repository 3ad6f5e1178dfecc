// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
// Game data lives under ticketPrices, scenarios, instantWins, and
// prizeMultipliers.match.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	TicketPrices     []int64                     `mapstructure:"ticketprices"`
	Scenarios        []string                    `mapstructure:"scenarios"`
	InstantWins      map[string]map[string]int64 `mapstructure:"instantwins"`
	PrizeMultipliers PrizeMultipliersConfig      `mapstructure:"prizemultipliers"`
	Wallet           WalletConfig                `mapstructure:"wallet"`
}

// PrizeMultipliersConfig holds the payout multipliers.
type PrizeMultipliersConfig struct {
	Match int64 `mapstructure:"match"`
}

// WalletConfig holds the player wallet configuration.
type WalletConfig struct {
	StartingBalance int64 `mapstructure:"startingbalance"`
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
	// e.g. WALLET_STARTINGBALANCE.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - defaults and env vars apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. The defaults reproduce the
// shipped game data: prices in pence, a 2000 starting balance, and a small
// scenario pool with two instant-win symbols.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ticketprices", []int64{100, 200, 500})
	v.SetDefault("scenarios", []string{
		"W:5,12;P:5,3,9,7,20,IW1",
		"W:8,21;P:1,8,14,21,27,30",
		"W:3,17;P:2,6,11,19,24,28",
		"W:9,25;P:4,10,16,22,26,IW2",
		"W:13,29;P:5,12,18,20,23,30",
	})
	v.SetDefault("prizemultipliers.match", 5)
	v.SetDefault("wallet.startingbalance", 2000)
	v.SetDefault("instantwins", map[string]map[string]int64{
		"IW1": {"100": 1000, "200": 2000, "500": 5000},
		"IW2": {"100": 2500, "200": 5000, "500": 12500},
	})
}

// Validate checks the configuration for structural problems that would make
// the game unplayable.
func (c *Config) Validate() error {
	if len(c.TicketPrices) == 0 {
		return fmt.Errorf("config: ticketPrices must not be empty")
	}
	for _, price := range c.TicketPrices {
		if price <= 0 {
			return fmt.Errorf("config: ticket price %d must be positive", price)
		}
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("config: scenarios must not be empty")
	}
	if c.PrizeMultipliers.Match <= 0 {
		return fmt.Errorf("config: prizeMultipliers.match must be positive")
	}
	if c.Wallet.StartingBalance < 0 {
		return fmt.Errorf("config: wallet.startingBalance must not be negative")
	}
	return nil
}

// InstantWinPayouts converts the instantWins section into numeric price keys
// for the prize table. Price keys that fail to parse are a config error.
func (c *Config) InstantWinPayouts() (map[string]map[int64]int64, error) {
	payouts := make(map[string]map[int64]int64, len(c.InstantWins))
	for token, byPrice := range c.InstantWins {
		converted := make(map[int64]int64, len(byPrice))
		for key, amount := range byPrice {
			price, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("config: instantWins[%s] has non-numeric price key %q", token, key)
			}
			converted[price] = amount
		}
		payouts[token] = converted
	}
	return payouts, nil
}
