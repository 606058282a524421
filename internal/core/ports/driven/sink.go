package driven

import (
	"context"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

// FieldMapSink receives a finished extraction for presentation or
// persistence (stdout, clipboard, history).
type FieldMapSink interface {
	// Write hands the extraction to the sink.
	Write(ctx context.Context, extraction *domain.Extraction) error
}
