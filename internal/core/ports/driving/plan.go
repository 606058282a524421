package driving

import (
	"context"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

// PlanService builds and persists response plans.
type PlanService interface {
	// Init extracts ref and returns an evenly weighted plan for it.
	Init(ctx context.Context, ref string) (*domain.Plan, error)

	// Load reads and validates a plan file.
	Load(path string) (*domain.Plan, error)

	// Save validates and writes a plan file.
	Save(path string, plan *domain.Plan) error

	// SetPercentages replaces the weights of one enumerated field from a
	// comma-separated list such as "40, 60".
	SetPercentages(plan *domain.Plan, fieldID, list string) error

	// SetResponses replaces the candidate answers of one open-ended field.
	SetResponses(plan *domain.Plan, fieldID string, responses []string) error
}
