package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
	"github.com/custodia-labs/formmap/internal/logger"
)

// Ensure SubmitService implements the interface.
var _ driving.SubmitService = (*SubmitService)(nil)

// SubmitService posts plan-driven responses to a form.
type SubmitService struct {
	submitter driven.ResponseSubmitter
}

// NewSubmitService creates a submit service.
func NewSubmitService(submitter driven.ResponseSubmitter) *SubmitService {
	return &SubmitService{submitter: submitter}
}

// Run posts total responses. Enumerated answers are apportioned up front
// so the final distribution matches the plan's percentages; open-ended
// answers are drawn from the candidate responses.
func (s *SubmitService) Run(
	ctx context.Context,
	plan *domain.Plan,
	total int,
	progress driving.SubmitProgress,
) (*driving.SubmitReport, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: submission count must be positive", domain.ErrInvalidInput)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	endpoint, err := domain.FormResponseURL(plan.FormURL)
	if err != nil {
		return nil, err
	}

	answers := BuildAnswers(plan, total)
	report := &driving.SubmitReport{Endpoint: endpoint}

	logger.Section("Submit")
	logger.Debug("Posting %d responses to %s", total, endpoint)

	for i := range total {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		values := make(url.Values, len(plan.Fields))
		for _, f := range plan.Fields {
			values.Set(f.ID, answers[f.ID][i])
		}

		status, err := s.submitter.Submit(ctx, endpoint, values)
		report.Total++
		switch {
		case err != nil:
			if ctx.Err() != nil {
				report.Total--
				return report, ctx.Err()
			}
			report.Failed++
			logger.Warn("Submission %d failed: %v", i+1, err)
		case status == http.StatusOK:
			report.Succeeded++
		default:
			report.Failed++
			logger.Warn("Submission %d rejected with HTTP %d", i+1, status)
		}

		if progress != nil {
			progress(report.Total, total, report.Succeeded)
		}
	}

	return report, nil
}

// BuildAnswers precomputes total answers for every plan field, keyed by
// field id. The result is deterministic for a given plan.
func BuildAnswers(plan *domain.Plan, total int) map[string][]string {
	answers := make(map[string][]string, len(plan.Fields))
	for i := range plan.Fields {
		f := &plan.Fields[i]
		if f.OpenEnded {
			answers[f.ID] = pickResponses(f.ID, f.Responses, total)
			continue
		}
		answers[f.ID] = domain.Assign(f.Labels(), f.Percentages(), total, f.ID)
	}
	return answers
}

func pickResponses(fieldID string, responses []string, total int) []string {
	out := make([]string, total)
	if len(responses) == 0 {
		return out
	}
	rnd := domain.SeededRand(fieldID + "#responses")
	for i := range out {
		out[i] = responses[rnd.IntN(len(responses))]
	}
	return out
}
