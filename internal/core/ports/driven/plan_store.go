package driven

import "github.com/custodia-labs/formmap/internal/core/domain"

// PlanStore reads and writes response plans.
type PlanStore interface {
	// Load reads the plan at path.
	Load(path string) (*domain.Plan, error)

	// Save writes the plan to path, replacing any existing file.
	Save(path string, plan *domain.Plan) error
}
