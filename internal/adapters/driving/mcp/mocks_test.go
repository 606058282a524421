package mcp

import (
	"context"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// mockExtractService is a mock implementation of driving.ExtractService.
type mockExtractService struct {
	extraction *domain.Extraction
	err        error
	gotRef     string
}

func (m *mockExtractService) Extract(_ context.Context, ref string) (*domain.Extraction, error) {
	m.gotRef = ref
	return m.extraction, m.err
}

func (m *mockExtractService) ExtractNode(domain.Node) (*domain.FieldMap, domain.LocateResult, error) {
	if m.extraction == nil {
		return nil, domain.LocateResult{}, m.err
	}
	return m.extraction.Fields, domain.LocateResult{Strategy: m.extraction.Strategy}, m.err
}

func (m *mockExtractService) ExtractTo(ctx context.Context, ref string, sink driven.FieldMapSink) (*domain.Extraction, error) {
	e, err := m.Extract(ctx, ref)
	if err != nil {
		return nil, err
	}
	return e, sink.Write(ctx, e)
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	list       []domain.Extraction
	extraction *domain.Extraction
	err        error
	gotLimit   int
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.Extraction, error) {
	m.gotLimit = limit
	return m.list, m.err
}

func (m *mockHistoryService) Get(_ context.Context, _ string) (*domain.Extraction, error) {
	return m.extraction, m.err
}

func (m *mockHistoryService) Latest(_ context.Context, _ string) (*domain.Extraction, error) {
	return m.extraction, m.err
}

func (m *mockHistoryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func sampleExtraction() *domain.Extraction {
	fm := domain.NewFieldMap()
	fm.Set("entry.2", domain.EnumeratedEntry([]string{"Yes", "No"}))
	fm.Set("entry.1", domain.OpenEndedEntry())
	return &domain.Extraction{ID: "ext-1", Ref: "form.json", Strategy: domain.StrategyFastPath, Fields: fm}
}
