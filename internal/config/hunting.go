package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"phone_hunter/internal/domain/value"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

// HuntingConfig is the operator-owned catalog file (config.yaml): which
// models to hunt, the per-model price table, and the matcher thresholds.
type HuntingConfig struct {
	General struct {
		MaxBudget        int64 `yaml:"max_budget" validate:"gt=0"`
		CheckIntervalMin int   `yaml:"check_interval_min" validate:"gt=0"`
		CheckIntervalMax int   `yaml:"check_interval_max" validate:"gtefield=CheckIntervalMin"`
	} `yaml:"general"`

	Models struct {
		Enabled  []string `yaml:"enabled" validate:"min=1"`
		Excluded []string `yaml:"excluded"`
	} `yaml:"models"`

	Pricing map[string]value.PricingRule `yaml:"pricing" validate:"min=1,dive"`

	SmartMatching value.SmartMatching `yaml:"smart_matching"`

	Sources struct {
		OLX     SourceConfig `yaml:"olx"`
		Allegro SourceConfig `yaml:"allegro_lokalnie"`
	} `yaml:"sources"`

	AI struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"ai"`

	Notify struct {
		SendAll    bool `yaml:"send_all"`
		TopMatches int  `yaml:"top_matches"`
	} `yaml:"notify"`
}

type SourceConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// LoadHunting reads and validates the YAML catalog. Model names and pricing
// keys are normalized to lowercase once here, so the engine never has to
// care about catalog casing.
func LoadHunting(path string) (HuntingConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return HuntingConfig{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	var cfg HuntingConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return HuntingConfig{}, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return HuntingConfig{}, fmt.Errorf("validate.Struct: %w", err)
	}

	cfg.Models.Enabled = lowerAll(cfg.Models.Enabled)
	cfg.Models.Excluded = lowerAll(cfg.Models.Excluded)

	pricing := make(map[string]value.PricingRule, len(cfg.Pricing))
	for model, rule := range cfg.Pricing {
		pricing[strings.ToLower(strings.TrimSpace(model))] = rule
	}
	cfg.Pricing = pricing

	if cfg.Notify.TopMatches <= 0 {
		cfg.Notify.TopMatches = 3
	}

	return cfg, nil
}

// LoadCatalog re-reads the catalog file from disk, for /reload.
func (h Hunting) LoadCatalog() (value.Catalog, error) {
	cfg, err := LoadHunting(h.CatalogPath)
	if err != nil {
		return value.Catalog{}, err
	}
	return cfg.Catalog(), nil
}

// Catalog projects the scoring-relevant subset into an immutable snapshot.
func (h HuntingConfig) Catalog() value.Catalog {
	return value.Catalog{
		Version:        1,
		MaxBudget:      h.General.MaxBudget,
		EnabledModels:  h.Models.Enabled,
		ExcludedModels: h.Models.Excluded,
		Pricing:        h.Pricing,
		SmartMatching:  h.SmartMatching,
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
