package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/errcodes"
)

// LedgerRepository persists the append-only dedup ledger. The fingerprint
// column carries a primary-key constraint, which is what serializes
// concurrent admits of the same ad. No application-level locking.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Insert attempts the atomic check-and-record. ON CONFLICT DO NOTHING makes
// the unique-violation case a zero-rows result instead of an error, so the
// loser of a concurrent race gets (false, nil), never a storage error.
func (r *LedgerRepository) Insert(ctx context.Context, entry entity.LedgerEntry) (bool, error) {
	schema := fromLedgerEntry(entry)
	if schema.RecordedAt.IsZero() {
		schema.RecordedAt = time.Now()
	}

	query := `
		INSERT INTO listing_ledger (fingerprint, title, price, url, source, recorded_at)
		VALUES (:fingerprint, :title, :price, :url, :source, :recorded_at)
		ON CONFLICT (fingerprint) DO NOTHING`

	res, err := r.db.NamedExecContext(ctx, query, schema)
	if err != nil {
		return false, domain.WrapError(err, errcodes.StorageFailure, "failed to insert ledger entry")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, domain.WrapError(err, errcodes.StorageFailure, "failed to check affected rows")
	}

	return rows == 1, nil
}

func (r *LedgerRepository) Exists(ctx context.Context, fingerprint value.Fingerprint) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM listing_ledger WHERE fingerprint = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, fingerprint.String()); err != nil {
		return false, domain.WrapError(err, errcodes.StorageFailure, "failed to check ledger entry")
	}

	return exists, nil
}

func (r *LedgerRepository) GetByFingerprint(ctx context.Context, fingerprint value.Fingerprint) (*entity.LedgerEntry, error) {
	query := `
		SELECT fingerprint, title, price, url, source, recorded_at
		FROM listing_ledger
		WHERE fingerprint = $1`

	var schema ledgerSchema
	if err := r.db.GetContext(ctx, &schema, query, fingerprint.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.LedgerEntryMissing, "ledger entry not found")
		}
		return nil, domain.WrapError(err, errcodes.StorageFailure, "failed to get ledger entry")
	}

	return schema.toDomain(), nil
}

// CountBySource returns per-source totals, used by the status endpoint.
func (r *LedgerRepository) CountBySource(ctx context.Context) (map[value.Source]int64, error) {
	query := `SELECT source, COUNT(*) AS total FROM listing_ledger GROUP BY source`

	var rows []struct {
		Source string `db:"source"`
		Total  int64  `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, domain.WrapError(err, errcodes.StorageFailure, "failed to count ledger entries")
	}

	totals := make(map[value.Source]int64, len(rows))
	for _, row := range rows {
		totals[value.Source(row.Source)] = row.Total
	}

	return totals, nil
}
