package profit

import (
	"sort"

	"github.com/samber/lo"

	"phone_hunter/internal/domain/entity"
)

// FindMatches enumerates pairs of same-model discounted listings from one
// scan batch whose combined acquisition-plus-repair cost beats buying one
// intact unit. Batch-scoped and stateless: the caller must join all scored
// decisions of the cycle before invoking it; running it over a partial batch
// silently produces incomplete pairings. Unmatched singles do not carry over
// to the next cycle.
func (e *Engine) FindMatches(decisions []entity.ProfitDecision) []entity.SmartMatch {
	cfg := e.catalog.SmartMatching
	if !cfg.Enabled {
		return nil
	}

	// A working unit is never a donor: combining only makes sense for
	// discounted or damaged units.
	donors := lo.Filter(decisions, func(d entity.ProfitDecision, _ int) bool {
		return d.Model != "" && !d.Condition.Sellable()
	})

	byModel := lo.GroupBy(donors, func(d entity.ProfitDecision) string {
		return d.Model
	})

	models := lo.Keys(byModel)
	sort.Strings(models)

	var matches []entity.SmartMatch

	for _, model := range models {
		group := byModel[model]
		if len(group) < 2 {
			continue
		}

		pricing, ok := e.catalog.PricingFor(model)
		if !ok {
			continue
		}

		// Unordered pairs, each enumerated once in batch order: no
		// self-pairing, no double counting.
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				first, second := group[i], group[j]

				// One repair charge: a combination assumes a single
				// repair/assembly step.
				combinedCost := first.BuyPrice + second.BuyPrice + pricing.RepairCost

				if float64(combinedCost) > float64(pricing.MarketPrice)*cfg.MaxCombinedCostRatio {
					continue
				}

				potentialProfit := pricing.MarketPrice - combinedCost
				if potentialProfit < cfg.MinProfitCombined {
					continue
				}

				var profitMargin float64
				if pricing.MarketPrice > 0 {
					profitMargin = float64(potentialProfit) / float64(pricing.MarketPrice) * 100
				}

				matches = append(matches, entity.SmartMatch{
					Model:           model,
					First:           first,
					Second:          second,
					CombinationType: combinationType(first, second),
					CombinedCost:    combinedCost,
					MarketPrice:     pricing.MarketPrice,
					PotentialProfit: potentialProfit,
					ProfitMargin:    profitMargin,
				})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].PotentialProfit > matches[j].PotentialProfit
	})

	return matches
}

// combinationType labels the pair. "ekran + obudowa" requires the two damage
// sets to complement each other over those two classes; a locked unit on
// either side reads "icloud + uszkodzony"; anything else is the generic
// two-damaged-units combination.
func combinationType(first, second entity.ProfitDecision) string {
	firstScreen := hasDamage(first.Damages, entity.DamageScreen)
	firstHousing := hasDamage(first.Damages, entity.DamageHousing)
	secondScreen := hasDamage(second.Damages, entity.DamageScreen)
	secondHousing := hasDamage(second.Damages, entity.DamageHousing)

	if (firstScreen && !firstHousing && secondHousing && !secondScreen) ||
		(secondScreen && !secondHousing && firstHousing && !firstScreen) {
		return entity.CombinationScreenHousing
	}

	if first.Condition == entity.ConditionLocked || second.Condition == entity.ConditionLocked {
		return entity.CombinationLockedBroken
	}

	return entity.CombinationTwoDamaged
}
