package profit

import (
	"fmt"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/errcodes"
)

// Engine converts a listing's free text into a buy/no-buy decision against an
// immutable catalog snapshot. No learning, no external calls: scoring is a
// pure function, safe to call from concurrent scrapers.
type Engine struct {
	catalog value.Catalog
}

func NewEngine(catalog value.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog returns the snapshot the engine was built with.
func (e *Engine) Catalog() value.Catalog {
	return e.catalog
}

// Score looks up the pricing row for the detected model and computes the
// decision. Errors carry errcodes.ModelUnknown (out-of-catalog item) or
// errcodes.PricingMissing (configuration gap). Both are recoverable skips,
// scoped to this one listing.
func (e *Engine) Score(listing entity.Listing) (entity.ProfitDecision, error) {
	model, ok := DetectModel(listing.Title, e.catalog.EnabledModels)
	if !ok {
		return entity.ProfitDecision{}, domain.NewError(
			errcodes.ModelUnknown,
			fmt.Sprintf("no enabled model matches %q", listing.Title),
		)
	}

	pricing, ok := e.catalog.PricingFor(model)
	if !ok {
		return entity.ProfitDecision{}, domain.NewError(
			errcodes.PricingMissing,
			fmt.Sprintf("no pricing configured for model %q", model),
		)
	}

	condition := DetectCondition(listing.Title, listing.Description)
	damages := DetectDamages(listing.Title, listing.Description)

	var maxBuyPrice, repairCost int64

	switch condition {
	case entity.ConditionLocked:
		maxBuyPrice = pricing.BuyMaxLocked
		repairCost = pricing.UnlockCost
	case entity.ConditionBroken, entity.ConditionParts:
		maxBuyPrice = pricing.BuyMaxBroken
		repairCost = pricing.RepairCost
	default:
		maxBuyPrice = pricing.BuyMaxWorking
		repairCost = 0
	}

	totalCost := listing.Price + repairCost
	potentialProfit := pricing.MarketPrice - totalCost

	var profitMargin float64
	if pricing.MarketPrice > 0 {
		profitMargin = float64(potentialProfit) / float64(pricing.MarketPrice) * 100
	}

	isProfitable := listing.Price <= maxBuyPrice && potentialProfit >= pricing.MinProfit

	recommendation, summary := classify(
		isProfitable, listing.Price, maxBuyPrice, potentialProfit, pricing.MinProfit, profitMargin,
	)

	return entity.ProfitDecision{
		Listing:         listing,
		Model:           model,
		Condition:       condition,
		Damages:         damages,
		BuyPrice:        listing.Price,
		MarketPrice:     pricing.MarketPrice,
		RepairCost:      repairCost,
		TotalCost:       totalCost,
		PotentialProfit: potentialProfit,
		ProfitMargin:    profitMargin,
		MaxBuyPrice:     maxBuyPrice,
		MinProfit:       pricing.MinProfit,
		IsProfitable:    isProfitable,
		Recommendation:  recommendation,
		Summary:         summary,
	}, nil
}

// classify is the 4-way display classification. A listing can be under budget
// yet rejected for margin; over-ceiling always reads "too expensive"
// regardless of margin.
func classify(
	isProfitable bool,
	price, maxBuyPrice, potentialProfit, minProfit int64,
	profitMargin float64,
) (entity.Recommendation, string) {
	if isProfitable {
		if potentialProfit >= minProfit*2 {
			return entity.RecommendationSuperDeal,
				fmt.Sprintf("🔥 SUPER OKAZJA! Zysk: %dzł (%.1f%%)", potentialProfit, profitMargin)
		}

		return entity.RecommendationProfitable,
			fmt.Sprintf("✅ Opłacalne. Zysk: %dzł (%.1f%%)", potentialProfit, profitMargin)
	}

	if price > maxBuyPrice {
		return entity.RecommendationTooExpensive,
			fmt.Sprintf("❌ Za drogie. Max: %dzł (jest: %dzł)", maxBuyPrice, price)
	}

	return entity.RecommendationThinMargin,
		fmt.Sprintf("⚠️ Mały zysk. Tylko %dzł (min: %dzł)", potentialProfit, minProfit)
}
