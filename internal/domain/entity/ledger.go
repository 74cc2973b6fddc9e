package entity

import (
	"time"

	"phone_hunter/internal/domain/value"
)

// LedgerEntry is one accepted fingerprint in the append-only dedup ledger.
// Created exactly once per admitted listing, never updated, never deleted.
type LedgerEntry struct {
	Fingerprint value.Fingerprint `json:"fingerprint" db:"fingerprint"`
	Title       string            `json:"title" db:"title"`
	Price       int64             `json:"price" db:"price"`
	URL         string            `json:"url" db:"url"`
	Source      value.Source      `json:"source" db:"source"`
	RecordedAt  time.Time         `json:"recorded_at" db:"recorded_at"`
}
