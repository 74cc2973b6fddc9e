package dedup

import (
	"context"
	"time"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/errcodes"
)

// LedgerRepository is the persistence port of the fingerprint store. Insert
// must be a single atomic unique-constraint-protected write: it reports
// (false, nil) when a row with the same fingerprint already exists, never an
// error. Serializing concurrent admits is the storage layer's job, not the
// application's.
type LedgerRepository interface {
	Insert(ctx context.Context, entry entity.LedgerEntry) (bool, error)
	Exists(ctx context.Context, fingerprint value.Fingerprint) (bool, error)
	GetByFingerprint(ctx context.Context, fingerprint value.Fingerprint) (*entity.LedgerEntry, error)
}

// Store is the single source of truth for "has this listing already been
// processed". Admission is at-most-once: of N concurrent TryAdmit calls with
// the same fingerprint exactly one wins.
type Store struct {
	ledger LedgerRepository
}

func NewStore(ledger LedgerRepository) *Store {
	return &Store{ledger: ledger}
}

// Fingerprint computes the canonical content fingerprint for a listing.
func (s *Store) Fingerprint(listing entity.Listing) value.Fingerprint {
	return Fingerprint(listing)
}

// TryAdmit atomically records the fingerprint and reports whether the caller
// may proceed to score the listing. false means duplicate, a normal negative
// result, not a failure. A non-nil error is a storage I/O failure and must
// never be conflated with "duplicate": doing so would permanently suppress a
// legitimate new listing.
func (s *Store) TryAdmit(ctx context.Context, fingerprint value.Fingerprint, listing entity.Listing) (bool, error) {
	if fingerprint.Empty() {
		return false, domain.NewError(errcodes.InvalidListing, "empty fingerprint")
	}

	admitted, err := s.ledger.Insert(ctx, entity.LedgerEntry{
		Fingerprint: fingerprint,
		Title:       listing.Title,
		Price:       listing.Price,
		URL:         listing.URL,
		Source:      listing.Source,
		RecordedAt:  time.Now(),
	})
	if err != nil {
		return false, domain.WrapError(err, errcodes.StorageFailure, "ledger insert failed")
	}

	return admitted, nil
}

// Exists is a read-only diagnostic check. Never a substitute for TryAdmit:
// a separate exists-then-insert would race under overlapping scan cycles.
func (s *Store) Exists(ctx context.Context, fingerprint value.Fingerprint) (bool, error) {
	exists, err := s.ledger.Exists(ctx, fingerprint)
	if err != nil {
		return false, domain.WrapError(err, errcodes.StorageFailure, "ledger lookup failed")
	}

	return exists, nil
}
