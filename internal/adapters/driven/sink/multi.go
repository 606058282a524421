package sink

import (
	"context"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// Ensure Multi implements the interface.
var _ driven.FieldMapSink = Multi(nil)

// Multi writes to every sink in order, stopping at the first error.
type Multi []driven.FieldMapSink

// Write fans out the extraction.
func (m Multi) Write(ctx context.Context, e *domain.Extraction) error {
	for _, s := range m {
		if err := s.Write(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
