package persistence

import (
	"time"

	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
)

// ledgerSchema maps a listing_ledger row.
type ledgerSchema struct {
	Fingerprint string    `db:"fingerprint"`
	Title       string    `db:"title"`
	Price       int64     `db:"price"`
	URL         string    `db:"url"`
	Source      string    `db:"source"`
	RecordedAt  time.Time `db:"recorded_at"`
}

func fromLedgerEntry(e entity.LedgerEntry) ledgerSchema {
	return ledgerSchema{
		Fingerprint: e.Fingerprint.String(),
		Title:       e.Title,
		Price:       e.Price,
		URL:         e.URL,
		Source:      e.Source.String(),
		RecordedAt:  e.RecordedAt,
	}
}

func (s ledgerSchema) toDomain() *entity.LedgerEntry {
	return &entity.LedgerEntry{
		Fingerprint: value.Fingerprint(s.Fingerprint),
		Title:       s.Title,
		Price:       s.Price,
		URL:         s.URL,
		Source:      value.Source(s.Source),
		RecordedAt:  s.RecordedAt,
	}
}
