package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

// Ensure PlanService implements the interface.
var _ driving.PlanService = (*PlanService)(nil)

// PlanService builds response plans from extractions.
type PlanService struct {
	extract driving.ExtractService
	store   driven.PlanStore
}

// NewPlanService creates a plan service.
func NewPlanService(extract driving.ExtractService, store driven.PlanStore) *PlanService {
	return &PlanService{extract: extract, store: store}
}

// Init extracts ref and returns an evenly weighted plan. The form URL is
// filled in when ref is a web address.
func (s *PlanService) Init(ctx context.Context, ref string) (*domain.Plan, error) {
	extraction, err := s.extract.Extract(ctx, ref)
	if err != nil {
		return nil, err
	}

	formURL := ""
	if domain.IsRemoteRef(ref) {
		if u, err := domain.NormalizeURL(ref); err == nil {
			formURL = u
		}
	}

	plan := domain.PlanFromFieldMap(formURL, extraction.Fields)
	return &plan, nil
}

// Load reads and validates a plan file.
func (s *PlanService) Load(path string) (*domain.Plan, error) {
	plan, err := s.store.Load(path)
	if err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// Save validates and writes a plan file.
func (s *PlanService) Save(path string, plan *domain.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	return s.store.Save(path, plan)
}

// SetPercentages replaces the weights of an enumerated field.
func (s *PlanService) SetPercentages(plan *domain.Plan, fieldID, list string) error {
	field, ok := plan.Field(fieldID)
	if !ok {
		return fmt.Errorf("%w: field %s", domain.ErrNotFound, fieldID)
	}
	if field.OpenEnded {
		return fmt.Errorf("%w: field %s is open-ended", domain.ErrInvalidInput, fieldID)
	}

	pcts, err := domain.ParsePercentList(list, len(field.Options))
	if err != nil {
		return fmt.Errorf("field %s: %w", fieldID, err)
	}
	for i := range field.Options {
		field.Options[i].Percent = pcts[i]
	}
	return nil
}

// SetResponses replaces the candidate answers of an open-ended field.
// Blank answers are dropped.
func (s *PlanService) SetResponses(plan *domain.Plan, fieldID string, responses []string) error {
	field, ok := plan.Field(fieldID)
	if !ok {
		return fmt.Errorf("%w: field %s", domain.ErrNotFound, fieldID)
	}
	if !field.OpenEnded {
		return fmt.Errorf("%w: field %s is not open-ended", domain.ErrInvalidInput, fieldID)
	}

	kept := make([]string, 0, len(responses))
	for _, r := range responses {
		if r = strings.TrimSpace(r); r != "" {
			kept = append(kept, r)
		}
	}
	field.Responses = kept
	return nil
}
