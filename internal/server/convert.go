package server

import (
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/rest"
)

func newRESTDecision(decision entity.ProfitDecision) rest.Decision {
	return rest.Decision{
		Model:           decision.Model,
		Condition:       string(decision.Condition),
		Damages:         decision.Damages,
		BuyPrice:        decision.BuyPrice,
		MarketPrice:     decision.MarketPrice,
		RepairCost:      decision.RepairCost,
		TotalCost:       decision.TotalCost,
		PotentialProfit: decision.PotentialProfit,
		ProfitMargin:    decision.ProfitMargin,
		MaxBuyPrice:     decision.MaxBuyPrice,
		IsProfitable:    decision.IsProfitable,
		Recommendation:  string(decision.Recommendation),
		Summary:         decision.Summary,
	}
}

func newRESTLedgerEntry(entry entity.LedgerEntry) rest.LedgerEntry {
	return rest.LedgerEntry{
		Fingerprint: entry.Fingerprint.String(),
		Title:       entry.Title,
		Price:       entry.Price,
		URL:         entry.URL,
		Source:      entry.Source.String(),
		RecordedAt:  entry.RecordedAt,
	}
}

func newDomainListing(listing rest.Listing) entity.Listing {
	return entity.Listing{
		Title:       listing.Title,
		Price:       listing.Price,
		Description: listing.Description,
		Location:    listing.Location,
		Source:      value.Source(listing.Source),
		URL:         listing.URL,
	}
}
