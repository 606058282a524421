package driven

import (
	"context"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

// BlobProvider obtains the raw form-definition blob.
// Implementations fetch pages, read files, or drive a browser; the core
// never sees how. A blob that cannot be obtained must be reported with an
// error wrapping domain.ErrMissingInput.
type BlobProvider interface {
	// Load returns the decoded blob for ref (URL, file path, or "-").
	Load(ctx context.Context, ref string) (domain.Node, error)
}
