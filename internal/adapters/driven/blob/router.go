package blob

import (
	"context"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// Ensure Router implements the interface.
var _ driven.BlobProvider = (*Router)(nil)

// Router sends URL references to the remote provider and everything
// else to the file provider.
type Router struct {
	local  driven.BlobProvider
	remote driven.BlobProvider
}

// NewRouter creates a router.
func NewRouter(local, remote driven.BlobProvider) *Router {
	return &Router{local: local, remote: remote}
}

// Load dispatches ref.
func (r *Router) Load(ctx context.Context, ref string) (domain.Node, error) {
	if domain.IsRemoteRef(ref) {
		return r.remote.Load(ctx, ref)
	}
	return r.local.Load(ctx, ref)
}
