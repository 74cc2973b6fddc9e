package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/dbtest"
	"phone_hunter/pkg/errcodes"
)

// testDB connects to the database from TEST_PG_DSN and applies the schema.
// Without the variable the suite is skipped, not failed.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/0001_init.sql"))

	return db
}

func testEntry() entity.LedgerEntry {
	return entity.LedgerEntry{
		Fingerprint: value.Fingerprint(xid.New().String()),
		Title:       "iPhone 11 Pro 256GB",
		Price:       1200,
		URL:         "https://www.olx.pl/oferta/abc",
		Source:      value.SourceOLX,
		RecordedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestLedgerRepositoryInsert(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := NewLedgerRepository(testDB(t))
	entry := testEntry()

	admitted, err := repo.Insert(ctx, entry)
	rq.NoError(err)
	rq.True(admitted)

	// ON CONFLICT DO NOTHING: re-insert is a clean negative, not an error.
	admitted, err = repo.Insert(ctx, entry)
	rq.NoError(err)
	rq.False(admitted)

	exists, err := repo.Exists(ctx, entry.Fingerprint)
	rq.NoError(err)
	rq.True(exists)

	got, err := repo.GetByFingerprint(ctx, entry.Fingerprint)
	rq.NoError(err)
	rq.Equal(entry.Title, got.Title)
	rq.Equal(entry.Price, got.Price)
	rq.Equal(entry.Source, got.Source)
}

func TestLedgerRepositoryGetMissing(t *testing.T) {
	rq := require.New(t)

	repo := NewLedgerRepository(testDB(t))

	_, err := repo.GetByFingerprint(context.Background(), value.Fingerprint(xid.New().String()))
	rq.True(domain.HasCode(err, errcodes.LedgerEntryMissing))
}

func TestLedgerRepositoryCountBySource(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := NewLedgerRepository(testDB(t))

	olx := testEntry()
	allegro := testEntry()
	allegro.Source = value.SourceAllegro

	_, err := repo.Insert(ctx, olx)
	rq.NoError(err)
	_, err = repo.Insert(ctx, allegro)
	rq.NoError(err)

	counts, err := repo.CountBySource(ctx)
	rq.NoError(err)
	rq.GreaterOrEqual(counts[value.SourceOLX], int64(1))
	rq.GreaterOrEqual(counts[value.SourceAllegro], int64(1))
}
