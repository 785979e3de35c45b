package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tradelab/macross/internal/types"
)

// Config holds every knob of a backtest run. It is validated once before the
// run starts; the engine never re-checks parameters per bar.
type Config struct {
	ShortWindow    int     `yaml:"short_window"`
	LongWindow     int     `yaml:"long_window"`
	VolLookback    int     `yaml:"vol_lookback"`
	RiskPerTrade   float64 `yaml:"risk_per_trade"`
	VolFloor       float64 `yaml:"vol_floor"`
	InitialCapital float64 `yaml:"initial_capital"`
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
	PeriodsPerYear float64 `yaml:"periods_per_year"`

	// FractionalShares allows non-integer quantities. The default rounds
	// buys down to whole shares, which keeps runs reproducible across
	// data sources with different tick conventions.
	FractionalShares bool `yaml:"fractional_shares"`
}

// Default returns the parameters the original strategy shipped with:
// SMA 20/50 crossover, 20-period volatility lookback, 2% risk per trade.
func Default() Config {
	return Config{
		ShortWindow:    20,
		LongWindow:     50,
		VolLookback:    20,
		RiskPerTrade:   0.02,
		VolFloor:       1e-4,
		InitialCapital: 100000,
		RiskFreeRate:   0.06,
		PeriodsPerYear: 252,
	}
}

// Load reads a YAML config file, applying defaults for absent fields.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks parameter ranges and cross-field constraints.
func (c Config) Validate() error {
	if c.ShortWindow <= 0 {
		return &types.ConfigError{Field: "short_window", Value: c.ShortWindow, Reason: "must be positive"}
	}
	if c.LongWindow <= 0 {
		return &types.ConfigError{Field: "long_window", Value: c.LongWindow, Reason: "must be positive"}
	}
	if c.ShortWindow >= c.LongWindow {
		return &types.ConfigError{
			Field:  "short_window",
			Value:  c.ShortWindow,
			Reason: fmt.Sprintf("must be less than long_window (%d)", c.LongWindow),
		}
	}
	if c.VolLookback <= 0 {
		return &types.ConfigError{Field: "vol_lookback", Value: c.VolLookback, Reason: "must be positive"}
	}
	if c.RiskPerTrade <= 0 || c.RiskPerTrade > 1 {
		return &types.ConfigError{Field: "risk_per_trade", Value: c.RiskPerTrade, Reason: "must be in (0, 1]"}
	}
	if c.VolFloor <= 0 {
		return &types.ConfigError{Field: "vol_floor", Value: c.VolFloor, Reason: "must be positive"}
	}
	if c.InitialCapital <= 0 {
		return &types.ConfigError{Field: "initial_capital", Value: c.InitialCapital, Reason: "must be positive"}
	}
	if c.PeriodsPerYear <= 0 {
		return &types.ConfigError{Field: "periods_per_year", Value: c.PeriodsPerYear, Reason: "must be positive"}
	}
	return nil
}
