// Package tui provides an interactive terminal editor for formmap response plans.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Plan validates and persists the edited plan.
	Plan driving.PlanService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(plan driving.PlanService) *Ports {
	return &Ports{Plan: plan}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Plan == nil {
		return ErrMissingPlanService
	}
	return nil
}
