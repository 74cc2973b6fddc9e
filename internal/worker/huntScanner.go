package worker

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/xid"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/service/profit"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/contextx"
	"phone_hunter/pkg/errcodes"
	"phone_hunter/pkg/logx"
)

// Source is one marketplace the scanner pulls normalized listings from.
type Source interface {
	Name() value.Source
	Fetch(ctx context.Context) ([]entity.Listing, error)
}

// FingerprintStore is the dedup gate in front of scoring.
type FingerprintStore interface {
	Fingerprint(listing entity.Listing) value.Fingerprint
	TryAdmit(ctx context.Context, fingerprint value.Fingerprint, listing entity.Listing) (bool, error)
}

// CatalogProvider hands out the catalog snapshot a cycle scores against.
type CatalogProvider interface {
	Snapshot() value.Catalog
}

// AnalyzerQueue is the optional background LLM sanity check. Enqueue failures
// never block or fail the pipeline.
type AnalyzerQueue interface {
	Enqueue(ctx context.Context, deal entity.Deal) error
}

// HuntScanner runs the scan loop: per cycle it takes a catalog snapshot,
// walks every source, gates each listing through the fingerprint ledger,
// scores the survivors, pushes deals to the notifier and finally runs the
// pairwise matcher over the joined batch.
type HuntScanner struct {
	catalog  CatalogProvider
	store    FingerprintStore
	sources  []Source
	deals    chan<- entity.Deal
	matches  chan<- entity.SmartMatch
	analyzer AnalyzerQueue

	sendAll     bool
	topMatches  int
	intervalMin time.Duration
	intervalMax time.Duration

	// Control fields.
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewHuntScanner(
	catalog CatalogProvider,
	store FingerprintStore,
	deals chan<- entity.Deal,
	matches chan<- entity.SmartMatch,
) *HuntScanner {
	return &HuntScanner{
		catalog:     catalog,
		store:       store,
		deals:       deals,
		matches:     matches,
		topMatches:  3,
		intervalMin: 2 * time.Minute,
		intervalMax: 4 * time.Minute,
	}
}

func (w *HuntScanner) WithSources(sources ...Source) *HuntScanner {
	w.sources = sources
	return w
}

func (w *HuntScanner) WithAnalyzer(queue AnalyzerQueue) *HuntScanner {
	w.analyzer = queue
	return w
}

func (w *HuntScanner) WithNotifyPolicy(sendAll bool, topMatches int) *HuntScanner {
	w.sendAll = sendAll
	if topMatches > 0 {
		w.topMatches = topMatches
	}
	return w
}

func (w *HuntScanner) WithInterval(min, max time.Duration) *HuntScanner {
	if min > 0 && max >= min {
		w.intervalMin = min
		w.intervalMax = max
	}
	return w
}

// Start launches the loop in the background. Returns an error when the
// scanner is already running.
func (w *HuntScanner) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("scanner is already running")
	}

	scanCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(scanCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(scanCtx).Error("scanner stopped", logx.Error(err))
		}
	}()

	return nil
}

func (w *HuntScanner) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *HuntScanner) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// Run executes scan cycles until the context is cancelled.
func (w *HuntScanner) Run(ctx context.Context) error {
	logger(ctx).Info("hunt scanner started", slog.Int("sources", len(w.sources)))

	for {
		w.ScanCycle(ctx)

		if err := w.waitNextCycle(ctx); err != nil {
			logger(ctx).Info("hunt scanner stopped")
			return err
		}
	}
}

type cycleStats struct {
	checked     int
	overBudget  int
	duplicates  int
	unscoreable int
	failures    int
	deals       int
	matches     int
}

// ScanCycle processes every source once against a single catalog snapshot.
// Individual listing failures are logged and skipped; nothing short of
// context cancellation aborts the remainder of the batch.
func (w *HuntScanner) ScanCycle(ctx context.Context) {
	cycleID := xid.New().String()
	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String("cycle", cycleID)))

	snapshot := w.catalog.Snapshot()
	engine := profit.NewEngine(snapshot)

	var (
		stats cycleStats
		batch []entity.ProfitDecision
	)

	for _, source := range w.sources {
		select {
		case <-ctx.Done():
			return
		default:
		}

		listings, err := source.Fetch(ctx)
		if err != nil {
			logger(ctx).Error("source fetch failed",
				slog.String("source", source.Name().String()),
				logx.Error(err),
			)
			continue
		}

		for _, listing := range listings {
			decision, ok := w.processListing(ctx, engine, snapshot, listing, &stats)
			if !ok {
				continue
			}
			batch = append(batch, decision)
		}
	}

	// The matcher needs the whole joined batch: pairing over a partial one
	// would silently miss combinations.
	w.emitMatches(ctx, engine, batch, &stats)

	metricScanCycles.Inc()
	logger(ctx).Info("scan cycle completed",
		slog.Int("checked", stats.checked),
		slog.Int("over_budget", stats.overBudget),
		slog.Int("duplicates", stats.duplicates),
		slog.Int("unscoreable", stats.unscoreable),
		slog.Int("failures", stats.failures),
		slog.Int("deals", stats.deals),
		slog.Int("matches", stats.matches),
		slog.Int64("catalog_version", snapshot.Version),
	)
}

func (w *HuntScanner) processListing(
	ctx context.Context,
	engine *profit.Engine,
	snapshot value.Catalog,
	listing entity.Listing,
	stats *cycleStats,
) (entity.ProfitDecision, bool) {
	stats.checked++
	metricListingsChecked.WithLabelValues(listing.Source.String()).Inc()

	if listing.Price > snapshot.MaxBudget {
		stats.overBudget++
		return entity.ProfitDecision{}, false
	}

	fingerprint := w.store.Fingerprint(listing)

	admitted, err := w.store.TryAdmit(ctx, fingerprint, listing)
	if err != nil {
		// A storage failure is a hard failure for this listing only. It must
		// not be treated as a duplicate: that would permanently suppress the
		// ad.
		stats.failures++
		metricLedgerFailures.Inc()
		logger(ctx).Error("ledger admit failed",
			slog.String("title", listing.Title),
			logx.Error(err),
		)
		return entity.ProfitDecision{}, false
	}

	if !admitted {
		stats.duplicates++
		metricDuplicates.WithLabelValues(listing.Source.String()).Inc()
		return entity.ProfitDecision{}, false
	}

	decision, err := engine.Score(listing)
	if err != nil {
		stats.unscoreable++
		switch {
		case domain.HasCode(err, errcodes.PricingMissing):
			// A configuration gap, unlike an out-of-catalog item.
			logger(ctx).Warn("pricing missing", slog.String("title", listing.Title), logx.Error(err))
		default:
			logger(ctx).Debug("listing unscoreable", slog.String("title", listing.Title))
		}
		return entity.ProfitDecision{}, false
	}

	if decision.IsProfitable || w.sendAll {
		deal := entity.Deal{Decision: decision, Fingerprint: fingerprint}

		select {
		case w.deals <- deal:
			stats.deals++
			metricDeals.WithLabelValues(listing.Source.String()).Inc()
		case <-ctx.Done():
			return entity.ProfitDecision{}, false
		}

		if w.analyzer != nil && decision.IsProfitable {
			if err := w.analyzer.Enqueue(ctx, deal); err != nil {
				logger(ctx).Warn("analyzer enqueue failed", logx.Error(err))
			}
		}
	}

	return decision, true
}

func (w *HuntScanner) emitMatches(
	ctx context.Context,
	engine *profit.Engine,
	batch []entity.ProfitDecision,
	stats *cycleStats,
) {
	matches := engine.FindMatches(batch)

	for i, match := range matches {
		if i >= w.topMatches {
			break
		}

		select {
		case w.matches <- match:
			stats.matches++
		case <-ctx.Done():
			return
		}
	}
}

func (w *HuntScanner) waitNextCycle(ctx context.Context) error {
	wait := w.intervalMin

	if span := w.intervalMax - w.intervalMin; span > 0 {
		wait += time.Duration(rand.Int63n(int64(span))) //nolint:gosec // jitter only
	}

	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
