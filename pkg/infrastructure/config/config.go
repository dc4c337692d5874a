package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the planning engine and its HTTP surface
type Config struct {
	Port    int    `yaml:"port"`
	LogMode string `yaml:"log_mode"`

	// HoldingCostPerUnit prices one unit of excess capacity or overstock
	HoldingCostPerUnit float64 `yaml:"holding_cost_per_unit"`
	// RebalanceMinQty suppresses transfer suggestions below this size
	RebalanceMinQty int64 `yaml:"rebalance_min_qty"`
	// LeadTimePeriods scales safety stock by sqrt(lead time)
	LeadTimePeriods float64 `yaml:"lead_time_periods"`

	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the configuration used when no file or env overrides exist
func Default() Config {
	return Config{
		Port:               8000,
		LogMode:            "dev",
		HoldingCostPerUnit: 5.0,
		RebalanceMinQty:    1,
		LeadTimePeriods:    1,
		CORSOrigins:        []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Load reads configuration from an optional YAML file, then applies
// environment overrides (PORT, LOG_MODE, HOLDING_COST_PER_UNIT)
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("HOLDING_COST_PER_UNIT"); v != "" {
		cost, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid HOLDING_COST_PER_UNIT %q: %w", v, err)
		}
		cfg.HoldingCostPerUnit = cost
	}

	if cfg.RebalanceMinQty < 0 {
		return cfg, fmt.Errorf("rebalance_min_qty must not be negative")
	}
	if cfg.LeadTimePeriods <= 0 {
		cfg.LeadTimePeriods = 1
	}
	return cfg, nil
}
