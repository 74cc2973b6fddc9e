package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/service/profit"
	"phone_hunter/internal/domain/value"
	"phone_hunter/pkg/errcodes"
	"phone_hunter/pkg/httpx/reply"
	"phone_hunter/pkg/httpx/req"
	"phone_hunter/pkg/rest"
)

type catalogProvider interface {
	Snapshot() value.Catalog
}

type scannerStatus interface {
	IsRunning() bool
}

type ledgerReader interface {
	GetByFingerprint(ctx context.Context, fingerprint value.Fingerprint) (*entity.LedgerEntry, error)
	CountBySource(ctx context.Context) (map[value.Source]int64, error)
}

type HuntServer struct {
	catalog catalogProvider
	scanner scannerStatus
	ledger  ledgerReader
}

func NewHuntServer(
	catalog catalogProvider,
	scanner scannerStatus,
	ledger ledgerReader,
) HuntServer {
	return HuntServer{
		catalog: catalog,
		scanner: scanner,
		ledger:  ledger,
	}
}

func (s HuntServer) getV1Status(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	counts, err := s.ledger.CountBySource(ctx)
	if err != nil {
		return fmt.Errorf("ledger.CountBySource: %w", err)
	}

	bySource := make(map[string]int64, len(counts))
	for source, count := range counts {
		bySource[source.String()] = count
	}

	catalog := s.catalog.Snapshot()

	reply.JSON(ctx, w, http.StatusOK, rest.Status{
		ScannerRunning: s.scanner.IsRunning(),
		CatalogVersion: catalog.Version,
		MaxBudget:      catalog.MaxBudget,
		EnabledModels:  catalog.EnabledModels,
		LedgerBySource: bySource,
	})

	return nil
}

func (s HuntServer) postV1Score(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Listing

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	engine := profit.NewEngine(s.catalog.Snapshot())

	decision, err := engine.Score(newDomainListing(request))
	if err != nil {
		if code, ok := domain.GetCode(err); ok {
			return failure.NewUnprocessableEntityError(
				err.Error(),
				failure.WithCode(code),
			)
		}
		return fmt.Errorf("engine.Score: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDecision(decision))

	return nil
}

func (s HuntServer) getV1LedgerEntry(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	fingerprint := value.Fingerprint(chi.URLParam(r, "fingerprint"))
	if fingerprint.Empty() {
		return failure.NewInvalidArgumentError(
			"empty fingerprint",
			failure.WithCode(errcodes.ValidationError),
		)
	}

	entry, err := s.ledger.GetByFingerprint(ctx, fingerprint)
	if err != nil {
		if domain.HasCode(err, errcodes.LedgerEntryMissing) {
			return failure.NewNotFoundError(
				err.Error(),
				failure.WithCode(errcodes.LedgerEntryMissing),
			)
		}
		return fmt.Errorf("ledger.GetByFingerprint: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTLedgerEntry(*entry))

	return nil
}
