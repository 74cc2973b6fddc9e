package entity

// Combination type labels for smart matches.
const (
	CombinationScreenHousing = "ekran + obudowa"
	CombinationLockedBroken  = "icloud + uszkodzony"
	CombinationTwoDamaged    = "2x uszkodzone"
)

// SmartMatch pairs two discounted listings of the same model whose combined
// acquisition-plus-repair cost beats buying one intact unit. A single repair
// charge is assumed: the combination is one repair/assembly step, not two.
type SmartMatch struct {
	Model  string         `json:"model"`
	First  ProfitDecision `json:"first"`
	Second ProfitDecision `json:"second"`

	CombinationType string  `json:"combination_type"`
	CombinedCost    int64   `json:"combined_cost"`
	MarketPrice     int64   `json:"market_price"`
	PotentialProfit int64   `json:"potential_profit"`
	ProfitMargin    float64 `json:"profit_margin"`
}
