package entity

// Condition is the detected device condition tier. The tier drives which
// acquisition-cost ceiling and repair cost apply.
type Condition string

const (
	ConditionWorking Condition = "working"
	ConditionBroken  Condition = "broken"
	ConditionParts   Condition = "parts"
	ConditionLocked  Condition = "locked"
)

// Sellable reports whether the unit can be flipped as-is, without repair or
// unlock.
func (c Condition) Sellable() bool {
	return c == ConditionWorking
}

// Damage labels match the original ad vocabulary.
const (
	DamageScreen    = "ekran"
	DamageHousing   = "obudowa"
	DamageBattery   = "bateria"
	DamageCamera    = "aparat"
	DamageBiometric = "biometria"
)

// Recommendation is the 4-way display classification of a scored listing.
type Recommendation string

const (
	RecommendationSuperDeal    Recommendation = "super_deal"
	RecommendationProfitable   Recommendation = "profitable"
	RecommendationTooExpensive Recommendation = "too_expensive"
	RecommendationThinMargin   Recommendation = "thin_margin"
)

// ProfitDecision is the scoring verdict for a single listing. It is a pure
// function of (listing, pricing snapshot): scoring the same listing against
// the same catalog twice yields an identical decision.
type ProfitDecision struct {
	Listing   Listing   `json:"listing"`
	Model     string    `json:"model"`
	Condition Condition `json:"condition"`
	Damages   []string  `json:"damages,omitempty"`

	BuyPrice        int64   `json:"buy_price"`
	MarketPrice     int64   `json:"market_price"`
	RepairCost      int64   `json:"repair_cost"`
	TotalCost       int64   `json:"total_cost"`
	PotentialProfit int64   `json:"potential_profit"`
	ProfitMargin    float64 `json:"profit_margin"`
	MaxBuyPrice     int64   `json:"max_buy_price"`
	MinProfit       int64   `json:"min_profit"`

	IsProfitable   bool           `json:"is_profitable"`
	Recommendation Recommendation `json:"recommendation"`
	Summary        string         `json:"summary"`
}
