package tui

import "errors"

// ErrMissingPlanService is returned when the plan service is not provided.
var ErrMissingPlanService = errors.New("tui: plan service is required")

// ErrMissingPlan is returned when no plan is given to edit.
var ErrMissingPlan = errors.New("tui: plan is required")
