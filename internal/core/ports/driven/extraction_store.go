package driven

import (
	"context"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

// ExtractionStore persists extraction history.
type ExtractionStore interface {
	// Save stores an extraction. An existing ID is overwritten.
	Save(ctx context.Context, extraction *domain.Extraction) error

	// Get retrieves an extraction by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Extraction, error)

	// List returns extractions, newest first. A limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.Extraction, error)

	// Latest returns the newest extraction for ref.
	// Returns domain.ErrNotFound if ref was never extracted.
	Latest(ctx context.Context, ref string) (*domain.Extraction, error)

	// Delete removes an extraction.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
