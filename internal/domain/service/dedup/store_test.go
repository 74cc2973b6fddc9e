package dedup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/errcodes"
)

// memLedger mimics the unique-constraint semantics of the real repository.
type memLedger struct {
	mu      sync.Mutex
	entries map[value.Fingerprint]entity.LedgerEntry
	failing bool
}

func newMemLedger() *memLedger {
	return &memLedger{entries: make(map[value.Fingerprint]entity.LedgerEntry)}
}

func (m *memLedger) Insert(_ context.Context, entry entity.LedgerEntry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return false, errors.New("connection refused")
	}

	if _, ok := m.entries[entry.Fingerprint]; ok {
		return false, nil
	}

	m.entries[entry.Fingerprint] = entry
	return true, nil
}

func (m *memLedger) Exists(_ context.Context, fingerprint value.Fingerprint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return false, errors.New("connection refused")
	}

	_, ok := m.entries[fingerprint]
	return ok, nil
}

func (m *memLedger) GetByFingerprint(_ context.Context, fingerprint value.Fingerprint) (*entity.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[fingerprint]
	if !ok {
		return nil, domain.NewError(errcodes.LedgerEntryMissing, "ledger entry not found")
	}
	return &entry, nil
}

func TestStoreTryAdmit(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := NewStore(newMemLedger())

	listing := entity.Listing{Title: "iPhone 12", Price: 900, Source: value.SourceOLX}
	fp := store.Fingerprint(listing)

	admitted, err := store.TryAdmit(ctx, fp, listing)
	rq.NoError(err)
	rq.True(admitted)

	// Second admit of the same fingerprint is a duplicate, not an error.
	admitted, err = store.TryAdmit(ctx, fp, listing)
	rq.NoError(err)
	rq.False(admitted)

	exists, err := store.Exists(ctx, fp)
	rq.NoError(err)
	rq.True(exists)
}

func TestStoreTryAdmitEmptyFingerprint(t *testing.T) {
	rq := require.New(t)

	store := NewStore(newMemLedger())

	admitted, err := store.TryAdmit(context.Background(), "", entity.Listing{Title: "iPhone 11"})
	rq.False(admitted)
	rq.True(domain.HasCode(err, errcodes.InvalidListing))
}

func TestStoreTryAdmitConcurrent(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := NewStore(newMemLedger())

	listing := entity.Listing{Title: "iPhone 13 Pro", Price: 1500, Source: value.SourceAllegro}
	fp := store.Fingerprint(listing)

	const workers = 32

	var wg sync.WaitGroup

	results := make(chan bool, workers)
	errs := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ok, err := store.TryAdmit(ctx, fp, listing)
			results <- ok
			errs <- err
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		rq.NoError(err)
	}

	admitted := 0
	for ok := range results {
		if ok {
			admitted++
		}
	}

	// Exactly one winner.
	rq.Equal(1, admitted)
}

func TestStoreStorageFailureIsNotDuplicate(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	ledger := newMemLedger()
	ledger.failing = true
	store := NewStore(ledger)

	listing := entity.Listing{Title: "iPhone 11", Price: 700}
	fp := store.Fingerprint(listing)

	admitted, err := store.TryAdmit(ctx, fp, listing)
	rq.False(admitted)
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.StorageFailure))

	// After the failure clears, the listing is still admissible: an I/O
	// error must never permanently suppress a new listing.
	ledger.failing = false

	admitted, err = store.TryAdmit(ctx, fp, listing)
	rq.NoError(err)
	rq.True(admitted)
}
