package driving

import (
	"context"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// ExtractService turns a form reference into a field map.
type ExtractService interface {
	// Extract loads the blob for ref and extracts its field map.
	// Returns an error wrapping domain.ErrMissingInput or
	// domain.ErrStructureNotFound on terminal failure; no partial
	// mapping is returned in either case.
	Extract(ctx context.Context, ref string) (*domain.Extraction, error)

	// ExtractNode extracts the field map of an already decoded blob.
	ExtractNode(root domain.Node) (*domain.FieldMap, domain.LocateResult, error)

	// ExtractTo runs Extract and hands the result to sink.
	ExtractTo(ctx context.Context, ref string, sink driven.FieldMapSink) (*domain.Extraction, error)
}

// HistoryService exposes stored extractions.
type HistoryService interface {
	// List returns extractions, newest first.
	List(ctx context.Context, limit int) ([]domain.Extraction, error)

	// Get returns one extraction.
	Get(ctx context.Context, id string) (*domain.Extraction, error)

	// Latest returns the newest extraction for ref.
	Latest(ctx context.Context, ref string) (*domain.Extraction, error)

	// Delete removes one extraction.
	Delete(ctx context.Context, id string) error
}
