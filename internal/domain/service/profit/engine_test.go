package profit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/errcodes"
)

func testCatalog() value.Catalog {
	return value.Catalog{
		Version:       1,
		MaxBudget:     2000,
		EnabledModels: []string{"iphone 11", "iphone 12", "iphone 13"},
		Pricing: map[string]value.PricingRule{
			"iphone 11": {
				MarketPrice:   2000,
				BuyMaxWorking: 900,
				BuyMaxBroken:  500,
				BuyMaxLocked:  300,
				RepairCost:    150,
				UnlockCost:    100,
				MinProfit:     300,
			},
			"iphone 12": {
				MarketPrice:  1400,
				BuyMaxBroken: 500,
				RepairCost:   150,
				MinProfit:    250,
			},
		},
	}
}

func TestScoreEndToEnd(t *testing.T) {
	rq := require.New(t)

	engine := NewEngine(testCatalog())

	decision, err := engine.Score(entity.Listing{
		Title:  "iPhone 12 64GB pękniety ekran",
		Price:  450,
		Source: value.SourceOLX,
	})
	rq.NoError(err)

	rq.Equal("iphone 12", decision.Model)
	rq.Equal(entity.ConditionBroken, decision.Condition)
	rq.Equal([]string{entity.DamageScreen}, decision.Damages)
	rq.Equal(int64(600), decision.TotalCost)
	rq.Equal(int64(800), decision.PotentialProfit)
	rq.True(decision.IsProfitable)
	// 800 >= 2*250, so the deal crosses into the top tier.
	rq.Equal(entity.RecommendationSuperDeal, decision.Recommendation)
}

func TestScoreCeilingBoundary(t *testing.T) {
	engine := NewEngine(testCatalog())

	tests := []struct {
		name           string
		price          int64
		wantProfit     int64
		wantProfitable bool
		wantRec        entity.Recommendation
	}{
		// Profits of 1100+ clear twice the 300 floor, so the admitted cases
		// land in the top tier.
		{"at ceiling", 900, 1100, true, entity.RecommendationSuperDeal},
		{"above ceiling", 901, 1099, false, entity.RecommendationTooExpensive},
		{"well below ceiling", 800, 1200, true, entity.RecommendationSuperDeal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			decision, err := engine.Score(entity.Listing{
				Title: "iPhone 11 sprawny",
				Price: tt.price,
			})
			rq.NoError(err)

			rq.Equal(entity.ConditionWorking, decision.Condition)
			rq.Equal(tt.wantProfit, decision.PotentialProfit)
			rq.Equal(tt.wantProfitable, decision.IsProfitable)
			rq.Equal(tt.wantRec, decision.Recommendation)
		})
	}
}

func TestScoreProfitableBand(t *testing.T) {
	rq := require.New(t)

	// Raise the floor so the 1100 profit sits between min_profit and twice
	// min_profit: plain profitable, not the top tier.
	catalog := testCatalog()
	rule := catalog.Pricing["iphone 11"]
	rule.MinProfit = 700
	catalog.Pricing["iphone 11"] = rule

	engine := NewEngine(catalog)

	decision, err := engine.Score(entity.Listing{
		Title: "iPhone 11 sprawny",
		Price: 900,
	})
	rq.NoError(err)

	rq.True(decision.IsProfitable)
	rq.Equal(int64(1100), decision.PotentialProfit)
	rq.Equal(entity.RecommendationProfitable, decision.Recommendation)
}

func TestScoreMarginBoundary(t *testing.T) {
	rq := require.New(t)

	catalog := testCatalog()
	rule := catalog.Pricing["iphone 11"]
	rule.MinProfit = 1300
	catalog.Pricing["iphone 11"] = rule

	engine := NewEngine(catalog)

	decision, err := engine.Score(entity.Listing{
		Title: "iPhone 11 stan bardzo dobry",
		Price: 800,
	})
	rq.NoError(err)

	// Under the ceiling but below the profit floor: the verdict must read
	// thin margin, not too expensive.
	rq.False(decision.IsProfitable)
	rq.Equal(entity.RecommendationThinMargin, decision.Recommendation)
}

func TestScoreConditionTiers(t *testing.T) {
	engine := NewEngine(testCatalog())

	tests := []struct {
		name          string
		title         string
		wantCondition entity.Condition
		wantMaxBuy    int64
		wantRepair    int64
	}{
		{"working", "iPhone 11 jak nowy", entity.ConditionWorking, 900, 0},
		{"broken", "iPhone 11 uszkodzony", entity.ConditionBroken, 500, 150},
		{"parts", "iPhone 11 na części", entity.ConditionParts, 500, 150},
		{"locked", "iPhone 11 blokada icloud", entity.ConditionLocked, 300, 100},
		{"locked wins over broken", "iPhone 11 uszkodzony icloud", entity.ConditionLocked, 300, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			decision, err := engine.Score(entity.Listing{Title: tt.title, Price: 200})
			rq.NoError(err)

			rq.Equal(tt.wantCondition, decision.Condition)
			rq.Equal(tt.wantMaxBuy, decision.MaxBuyPrice)
			rq.Equal(tt.wantRepair, decision.RepairCost)
		})
	}
}

func TestScoreIdempotent(t *testing.T) {
	rq := require.New(t)

	engine := NewEngine(testCatalog())

	listing := entity.Listing{
		Title:       "iPhone 12 pęknięty wyświetlacz",
		Price:       400,
		Description: "Do wymiany ekran, reszta sprawna",
		Source:      value.SourceAllegro,
	}

	first, err := engine.Score(listing)
	rq.NoError(err)

	second, err := engine.Score(listing)
	rq.NoError(err)

	rq.Equal(first, second)
}

func TestScoreModelUnknown(t *testing.T) {
	rq := require.New(t)

	engine := NewEngine(testCatalog())

	_, err := engine.Score(entity.Listing{Title: "Samsung Galaxy S21", Price: 900})
	rq.True(domain.HasCode(err, errcodes.ModelUnknown))
}

func TestScorePricingMissing(t *testing.T) {
	rq := require.New(t)

	// "iphone 13" is enabled but has no pricing row: a configuration gap,
	// distinct from an out-of-catalog model.
	engine := NewEngine(testCatalog())

	_, err := engine.Score(entity.Listing{Title: "iPhone 13 mini", Price: 1500})
	rq.True(domain.HasCode(err, errcodes.PricingMissing))
}
