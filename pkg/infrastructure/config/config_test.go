package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != 8000 {
		t.Errorf("Expected default port 8000, got %d", cfg.Port)
	}
	if cfg.HoldingCostPerUnit != 5.0 {
		t.Errorf("Expected default holding cost 5.0, got %v", cfg.HoldingCostPerUnit)
	}
	if cfg.LeadTimePeriods != 1 {
		t.Errorf("Expected default lead time 1, got %v", cfg.LeadTimePeriods)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `port: 9000
log_mode: prod
holding_cost_per_unit: 2.5
rebalance_min_qty: 10
lead_time_periods: 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9000 || cfg.LogMode != "prod" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.HoldingCostPerUnit != 2.5 || cfg.RebalanceMinQty != 10 || cfg.LeadTimePeriods != 4 {
		t.Errorf("Planning parameters not loaded: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("HOLDING_COST_PER_UNIT", "1.25")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 7777 {
		t.Errorf("Expected env port 7777, got %d", cfg.Port)
	}
	if cfg.HoldingCostPerUnit != 1.25 {
		t.Errorf("Expected env holding cost 1.25, got %v", cfg.HoldingCostPerUnit)
	}
}

func TestLoad_BadEnvPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(""); err == nil {
		t.Error("Expected error for invalid PORT")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoad_NonPositiveLeadTimeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("lead_time_periods: -2\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LeadTimePeriods != 1 {
		t.Errorf("Non-positive lead time should fall back to 1, got %v", cfg.LeadTimePeriods)
	}
}
