package handler

import (
	"context"

	"phone_hunter/internal/domain/value"
)

type scanner interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
}

type catalogStore interface {
	Snapshot() value.Catalog
	SetBudget(budget int64) (value.Catalog, error)
	SetMinProfit(minProfit int64) (value.Catalog, error)
	Replace(catalog value.Catalog) value.Catalog
}

// catalogLoader re-reads the hunting config from disk for /reload.
type catalogLoader func() (value.Catalog, error)

type Handler struct {
	scanner scanner
	store   catalogStore
	reload  catalogLoader
}

func New(scanner scanner, store catalogStore, reload catalogLoader) *Handler {
	return &Handler{
		scanner: scanner,
		store:   store,
		reload:  reload,
	}
}
