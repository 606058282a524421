package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/custodia-labs/formmap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/formmap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
	"github.com/custodia-labs/formmap/internal/core/services"
)

// mockExtractService returns a fixed extraction.
type mockExtractService struct {
	extraction *domain.Extraction
	err        error
	refs       []string
}

func (m *mockExtractService) Extract(_ context.Context, ref string) (*domain.Extraction, error) {
	m.refs = append(m.refs, ref)
	if m.err != nil {
		return nil, m.err
	}
	e := *m.extraction
	e.Ref = ref
	return &e, nil
}

func (m *mockExtractService) ExtractNode(domain.Node) (*domain.FieldMap, domain.LocateResult, error) {
	return m.extraction.Fields, domain.LocateResult{Strategy: m.extraction.Strategy}, m.err
}

func (m *mockExtractService) ExtractTo(ctx context.Context, ref string, sink driven.FieldMapSink) (*domain.Extraction, error) {
	e, err := m.Extract(ctx, ref)
	if err != nil {
		return nil, err
	}
	return e, sink.Write(ctx, e)
}

// mockSubmitService records the run it was asked for.
type mockSubmitService struct {
	report   *driving.SubmitReport
	err      error
	gotTotal int
}

func (m *mockSubmitService) Run(
	_ context.Context, plan *domain.Plan, total int, progress driving.SubmitProgress,
) (*driving.SubmitReport, error) {
	m.gotTotal = total
	if progress != nil {
		for i := 1; i <= total; i++ {
			progress(i, total, i)
		}
	}
	return m.report, m.err
}

func sampleExtraction() *domain.Extraction {
	fm := domain.NewFieldMap()
	fm.Set("entry.100", domain.EnumeratedEntry([]string{"Yes", "No"}))
	fm.Set("entry.200", domain.OpenEndedEntry())
	return &domain.Extraction{
		ID:        "ext-1",
		Strategy:  domain.StrategyFastPath,
		Questions: 2,
		Fields:    fm,
	}
}

type testEnv struct {
	extract   *mockExtractService
	extractOp []ExtractOptions
	history   *memory.ExtractionStore
	submit    *mockSubmitService
	services  *Services
}

// setupTestServices installs mock-backed services and resets flags.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		extract: &mockExtractService{extraction: sampleExtraction()},
		history: memory.NewExtractionStore(),
		submit:  &mockSubmitService{report: &driving.SubmitReport{Endpoint: "https://example.com/formResponse"}},
	}
	plans := services.NewPlanService(env.extract, file.NewPlanStore())
	env.services = &Services{
		NewExtract: func(opts ExtractOptions) (driving.ExtractService, error) {
			env.extractOp = append(env.extractOp, opts)
			return env.extract, nil
		},
		History:    services.NewHistoryService(env.history),
		Plan:       plans,
		Submit:     env.submit,
		Settings:   services.NewSettingsService(memory.NewConfigStore()),
		ConfigPath: "/tmp/formmap/config.toml",
	}

	prev := appServices
	SetServices(env.services)
	t.Cleanup(func() {
		SetServices(prev)
		resetFlags()
	})
	resetFlags()
	return env
}

func resetFlags() {
	extractJSON, extractCompact, extractClipboard = false, false, false
	extractNoHistory, extractWatch, extractProvider = false, false, ""
	historyLimit, historyJSON, historyCompact, historyLatest = 20, false, false, false
	planOutput, planForce = "plan.toml", false
	submitCount, submitQuiet = 0, false
	verbose, configDir = false, ""
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func indexOf(s, sub string) int {
	return strings.Index(s, sub)
}
