package profit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
)

func matcherCatalog() value.Catalog {
	return value.Catalog{
		Version:       1,
		EnabledModels: []string{"iphone 11"},
		Pricing: map[string]value.PricingRule{
			"iphone 11": {
				MarketPrice: 1500,
				RepairCost:  50,
				MinProfit:   300,
			},
		},
		SmartMatching: value.SmartMatching{
			Enabled:              true,
			MaxCombinedCostRatio: 0.6,
			MinProfitCombined:    400,
		},
	}
}

func donor(model string, price int64, condition entity.Condition, damages ...string) entity.ProfitDecision {
	return entity.ProfitDecision{
		Listing:   entity.Listing{Title: model, Price: price},
		Model:     model,
		Condition: condition,
		Damages:   damages,
		BuyPrice:  price,
	}
}

func TestFindMatchesAcceptance(t *testing.T) {
	rq := require.New(t)

	engine := NewEngine(matcherCatalog())

	matches := engine.FindMatches([]entity.ProfitDecision{
		donor("iphone 11", 100, entity.ConditionParts),
		donor("iphone 11", 150, entity.ConditionParts),
	})

	rq.Len(matches, 1)
	rq.Equal(int64(300), matches[0].CombinedCost) // 100 + 150 + one repair
	rq.Equal(int64(1200), matches[0].PotentialProfit)
	rq.Equal(entity.CombinationTwoDamaged, matches[0].CombinationType)
}

func TestFindMatchesProfitFloor(t *testing.T) {
	rq := require.New(t)

	catalog := matcherCatalog()
	catalog.SmartMatching.MinProfitCombined = 1300

	engine := NewEngine(catalog)

	matches := engine.FindMatches([]entity.ProfitDecision{
		donor("iphone 11", 100, entity.ConditionParts),
		donor("iphone 11", 150, entity.ConditionParts),
	})

	rq.Empty(matches)
}

func TestFindMatchesCostRatio(t *testing.T) {
	rq := require.New(t)

	engine := NewEngine(matcherCatalog())

	// 500 + 400 + 50 = 950 > 1500 * 0.6 = 900.
	matches := engine.FindMatches([]entity.ProfitDecision{
		donor("iphone 11", 500, entity.ConditionBroken),
		donor("iphone 11", 400, entity.ConditionBroken),
	})

	rq.Empty(matches)
}

func TestFindMatchesDisabled(t *testing.T) {
	rq := require.New(t)

	catalog := matcherCatalog()
	catalog.SmartMatching.Enabled = false

	engine := NewEngine(catalog)

	matches := engine.FindMatches([]entity.ProfitDecision{
		donor("iphone 11", 100, entity.ConditionParts),
		donor("iphone 11", 150, entity.ConditionParts),
	})

	rq.Nil(matches)
}

func TestFindMatchesExcludesWorkingDonors(t *testing.T) {
	rq := require.New(t)

	engine := NewEngine(matcherCatalog())

	matches := engine.FindMatches([]entity.ProfitDecision{
		donor("iphone 11", 100, entity.ConditionWorking),
		donor("iphone 11", 150, entity.ConditionParts),
	})

	rq.Empty(matches)
}

func TestFindMatchesDifferentModelsNeverPair(t *testing.T) {
	rq := require.New(t)

	catalog := matcherCatalog()
	catalog.Pricing["iphone 12"] = value.PricingRule{MarketPrice: 1800, RepairCost: 60}

	engine := NewEngine(catalog)

	matches := engine.FindMatches([]entity.ProfitDecision{
		donor("iphone 11", 100, entity.ConditionParts),
		donor("iphone 12", 150, entity.ConditionParts),
	})

	rq.Empty(matches)
}

func TestFindMatchesCombinationLabels(t *testing.T) {
	engine := NewEngine(matcherCatalog())

	tests := []struct {
		name   string
		first  entity.ProfitDecision
		second entity.ProfitDecision
		want   string
	}{
		{
			"screen plus housing",
			donor("iphone 11", 100, entity.ConditionBroken, entity.DamageScreen),
			donor("iphone 11", 150, entity.ConditionBroken, entity.DamageHousing),
			entity.CombinationScreenHousing,
		},
		{
			"screen plus housing reversed",
			donor("iphone 11", 100, entity.ConditionBroken, entity.DamageHousing),
			donor("iphone 11", 150, entity.ConditionBroken, entity.DamageScreen),
			entity.CombinationScreenHousing,
		},
		{
			"locked with broken",
			donor("iphone 11", 100, entity.ConditionLocked),
			donor("iphone 11", 150, entity.ConditionBroken, entity.DamageScreen),
			entity.CombinationLockedBroken,
		},
		{
			"both damaged same class",
			donor("iphone 11", 100, entity.ConditionBroken, entity.DamageScreen),
			donor("iphone 11", 150, entity.ConditionBroken, entity.DamageScreen),
			entity.CombinationTwoDamaged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			matches := engine.FindMatches([]entity.ProfitDecision{tt.first, tt.second})
			rq.Len(matches, 1)
			rq.Equal(tt.want, matches[0].CombinationType)
		})
	}
}

func TestFindMatchesSortedByProfit(t *testing.T) {
	rq := require.New(t)

	engine := NewEngine(matcherCatalog())

	matches := engine.FindMatches([]entity.ProfitDecision{
		donor("iphone 11", 300, entity.ConditionParts),
		donor("iphone 11", 200, entity.ConditionParts),
		donor("iphone 11", 100, entity.ConditionParts),
	})

	rq.Len(matches, 3)
	for i := 1; i < len(matches); i++ {
		rq.GreaterOrEqual(matches[i-1].PotentialProfit, matches[i].PotentialProfit)
	}
	// Cheapest pair first: 100 + 200 + 50 = 350, profit 1150.
	rq.Equal(int64(1150), matches[0].PotentialProfit)
}
