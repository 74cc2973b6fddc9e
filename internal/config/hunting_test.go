package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const huntingYAML = `
general:
  max_budget: 2000
  check_interval_min: 120
  check_interval_max: 300

models:
  enabled:
    - "iPhone 11"
    - "iphone 12"
  excluded:
    - "Atrapa"

pricing:
  "iPhone 11":
    market_price: 2000
    buy_max_working: 900
    buy_max_broken: 500
    buy_max_locked: 300
    repair_cost: 150
    unlock_cost: 100
    min_profit: 300
  "iphone 12":
    market_price: 1400
    buy_max_broken: 500
    repair_cost: 150
    min_profit: 250

smart_matching:
  enabled: true
  max_combined_cost: 0.6
  min_profit_combined: 400

sources:
  olx:
    enabled: true
    url: "https://www.olx.pl/elektronika/telefony/iphone/"
  allegro_lokalnie:
    enabled: false
    url: ""

ai:
  enabled: false

notify:
  send_all: false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadHunting(t *testing.T) {
	rq := require.New(t)

	cfg, err := LoadHunting(writeConfig(t, huntingYAML))
	rq.NoError(err)

	rq.Equal(int64(2000), cfg.General.MaxBudget)

	// Model names and pricing keys are normalized to lowercase on load.
	rq.Equal([]string{"iphone 11", "iphone 12"}, cfg.Models.Enabled)
	rq.Equal([]string{"atrapa"}, cfg.Models.Excluded)
	rq.Contains(cfg.Pricing, "iphone 11")
	rq.Contains(cfg.Pricing, "iphone 12")

	rq.True(cfg.SmartMatching.Enabled)
	rq.InDelta(0.6, cfg.SmartMatching.MaxCombinedCostRatio, 1e-9)

	rq.True(cfg.Sources.OLX.Enabled)
	rq.False(cfg.Sources.Allegro.Enabled)

	// Unset top_matches falls back to the default.
	rq.Equal(3, cfg.Notify.TopMatches)
}

func TestLoadHuntingCatalogProjection(t *testing.T) {
	rq := require.New(t)

	cfg, err := LoadHunting(writeConfig(t, huntingYAML))
	rq.NoError(err)

	catalog := cfg.Catalog()

	rq.Equal(int64(1), catalog.Version)
	rq.Equal(int64(2000), catalog.MaxBudget)

	rule, ok := catalog.PricingFor("iphone 11")
	rq.True(ok)
	rq.Equal(int64(2000), rule.MarketPrice)
	rq.Equal(int64(300), rule.MinProfit)

	rq.True(catalog.ModelEnabled("Sprzedam iPhone 12 pęknięty"))
	rq.False(catalog.ModelEnabled("atrapa iphone 12"))
	rq.False(catalog.ModelEnabled("Samsung Galaxy"))
}

func TestLoadHuntingValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"no models", `
general:
  max_budget: 1000
  check_interval_min: 60
  check_interval_max: 120
models:
  enabled: []
pricing:
  "iphone 11":
    market_price: 1000
`},
		{"negative budget", `
general:
  max_budget: -5
  check_interval_min: 60
  check_interval_max: 120
models:
  enabled: ["iphone 11"]
pricing:
  "iphone 11":
    market_price: 1000
`},
		{"interval max below min", `
general:
  max_budget: 1000
  check_interval_min: 120
  check_interval_max: 60
models:
  enabled: ["iphone 11"]
pricing:
  "iphone 11":
    market_price: 1000
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadHunting(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoadHuntingMissingFile(t *testing.T) {
	_, err := LoadHunting(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
