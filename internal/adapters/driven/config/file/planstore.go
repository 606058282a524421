package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// Ensure PlanStore implements the interface.
var _ driven.PlanStore = (*PlanStore)(nil)

// PlanStore reads and writes response plans as TOML files.
type PlanStore struct{}

// NewPlanStore creates a new TOML plan store.
func NewPlanStore() *PlanStore {
	return &PlanStore{}
}

// Load reads a plan from path.
func (s *PlanStore) Load(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: plan %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading plan: %w", err)
	}

	var plan domain.Plan
	if err := toml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("%w: parsing plan %s: %v", domain.ErrInvalidPlan, path, err)
	}
	return &plan, nil
}

// Save writes plan to path, creating parent directories as needed.
func (s *PlanStore) Save(path string, plan *domain.Plan) error {
	data, err := toml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating plan directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}
