package driving

import (
	"context"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

// SubmitProgress is called after each submission attempt.
type SubmitProgress func(done, total, succeeded int)

// SubmitReport summarises a submission run.
type SubmitReport struct {
	// Endpoint is the formResponse URL posted to.
	Endpoint string

	// Total is the number of submissions attempted.
	Total int

	// Succeeded counts responses accepted with HTTP 200.
	Succeeded int

	// Failed counts rejected responses and transport errors.
	Failed int
}

// SubmitService generates and posts form responses from a plan.
type SubmitService interface {
	// Run posts total responses built from plan. Individual failures are
	// counted, not returned; only invalid arguments and context
	// cancellation abort the run.
	Run(ctx context.Context, plan *domain.Plan, total int, progress SubmitProgress) (*SubmitReport, error)
}
