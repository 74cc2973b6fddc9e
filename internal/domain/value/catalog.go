package value

import "strings"

// PricingRule is the static per-model price table row. It is owned by
// configuration; the scoring engine only reads it. All amounts are in whole
// currency units (zł).
type PricingRule struct {
	MarketPrice   int64 `yaml:"market_price" validate:"gte=0"`
	BuyMaxWorking int64 `yaml:"buy_max_working" validate:"gte=0"`
	BuyMaxBroken  int64 `yaml:"buy_max_broken" validate:"gte=0"`
	BuyMaxLocked  int64 `yaml:"buy_max_locked" validate:"gte=0"`
	RepairCost    int64 `yaml:"repair_cost" validate:"gte=0"`
	UnlockCost    int64 `yaml:"unlock_cost" validate:"gte=0"`
	MinProfit     int64 `yaml:"min_profit" validate:"gte=0"`
}

// SmartMatching holds the pairwise matcher thresholds.
type SmartMatching struct {
	Enabled              bool    `yaml:"enabled"`
	MaxCombinedCostRatio float64 `yaml:"max_combined_cost" validate:"gte=0,lte=1"`
	MinProfitCombined    int64   `yaml:"min_profit_combined" validate:"gte=0"`
}

// Catalog is an immutable configuration snapshot passed into the scoring
// pipeline per scan cycle. Runtime adjustments (the /setbudget command)
// produce a new snapshot with a bumped Version instead of mutating state
// shared across concurrent scoring calls.
type Catalog struct {
	Version        int64
	MaxBudget      int64
	EnabledModels  []string
	ExcludedModels []string
	Pricing        map[string]PricingRule
	SmartMatching  SmartMatching
}

// PricingFor returns the pricing row for a detected model name.
func (c Catalog) PricingFor(model string) (PricingRule, bool) {
	rule, ok := c.Pricing[strings.ToLower(strings.TrimSpace(model))]
	return rule, ok
}

// ModelEnabled checks the free text against the excluded list first, then the
// enabled list.
func (c Catalog) ModelEnabled(text string) bool {
	lower := strings.ToLower(text)

	for _, excluded := range c.ExcludedModels {
		if strings.Contains(lower, excluded) {
			return false
		}
	}

	for _, enabled := range c.EnabledModels {
		if strings.Contains(lower, enabled) {
			return true
		}
	}

	return false
}

// WithBudget returns a copy of the snapshot with a new budget and a bumped
// version.
func (c Catalog) WithBudget(budget int64) Catalog {
	next := c
	next.MaxBudget = budget
	next.Version++
	return next
}

// WithMinProfit returns a copy of the snapshot with the per-model profit
// floor set to minProfit for every model, and a bumped version.
func (c Catalog) WithMinProfit(minProfit int64) Catalog {
	next := c
	next.Pricing = make(map[string]PricingRule, len(c.Pricing))
	for model, rule := range c.Pricing {
		rule.MinProfit = minProfit
		next.Pricing[model] = rule
	}
	next.Version++
	return next
}
