package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// errHistoryDisabled is returned when no store is configured.
var errHistoryDisabled = errors.New("history is disabled")

// HistoryService exposes past extractions.
type HistoryService struct {
	store driven.ExtractionStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.ExtractionStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns extractions, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Extraction, error) {
	if s.store == nil {
		return nil, errHistoryDisabled
	}
	return s.store.List(ctx, limit)
}

// Get returns one extraction by id.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Extraction, error) {
	if s.store == nil {
		return nil, errHistoryDisabled
	}
	return s.store.Get(ctx, id)
}

// Latest returns the newest extraction for ref.
func (s *HistoryService) Latest(ctx context.Context, ref string) (*domain.Extraction, error) {
	if s.store == nil {
		return nil, errHistoryDisabled
	}
	return s.store.Latest(ctx, ref)
}

// Delete removes one extraction.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return errHistoryDisabled
	}
	return s.store.Delete(ctx, id)
}
