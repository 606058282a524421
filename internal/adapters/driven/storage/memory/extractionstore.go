package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// Ensure ExtractionStore implements the interface.
var _ driven.ExtractionStore = (*ExtractionStore)(nil)

// ExtractionStore is an in-memory implementation of driven.ExtractionStore.
type ExtractionStore struct {
	mu          sync.RWMutex
	extractions map[string]domain.Extraction
}

// NewExtractionStore creates a new in-memory extraction store.
func NewExtractionStore() *ExtractionStore {
	return &ExtractionStore{
		extractions: make(map[string]domain.Extraction),
	}
}

// Save stores or overwrites an extraction.
func (s *ExtractionStore) Save(_ context.Context, extraction *domain.Extraction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extractions[extraction.ID] = *extraction
	return nil
}

// Get retrieves an extraction by ID.
func (s *ExtractionStore) Get(_ context.Context, id string) (*domain.Extraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.extractions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

// List returns extractions, newest first.
func (s *ExtractionStore) List(_ context.Context, limit int) ([]domain.Extraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Extraction, 0, len(s.extractions))
	for _, e := range s.extractions {
		result = append(result, e)
	}
	slices.SortFunc(result, newestFirst)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Latest returns the newest extraction for ref.
func (s *ExtractionStore) Latest(ctx context.Context, ref string) (*domain.Extraction, error) {
	all, _ := s.List(ctx, 0)
	for i := range all {
		if all[i].Ref == ref {
			return &all[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes an extraction.
func (s *ExtractionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.extractions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.extractions, id)
	return nil
}

func newestFirst(a, b domain.Extraction) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	if a.ID > b.ID {
		return -1
	}
	if a.ID < b.ID {
		return 1
	}
	return 0
}
