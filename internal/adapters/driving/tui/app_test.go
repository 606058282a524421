package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/formmap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/formmap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/services"
)

func testPlan() *domain.Plan {
	return &domain.Plan{
		Fields: []domain.PlanField{
			{ID: "entry.1", Options: []domain.WeightedOption{{Label: "A", Percent: 100}}},
		},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	ports := NewPorts(services.NewPlanService(nil, file.NewPlanStore()))
	app, err := NewApp(ports, testPlan(), t.TempDir()+"/plan.toml")
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, messages.ViewEditor, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_MissingPlanService(t *testing.T) {
	app, err := NewApp(&Ports{}, testPlan(), "plan.toml")

	assert.ErrorIs(t, err, ErrMissingPlanService)
	assert.Nil(t, app)
}

func TestNewApp_MissingPlan(t *testing.T) {
	ports := NewPorts(services.NewPlanService(nil, file.NewPlanStore()))

	app, err := NewApp(ports, nil, "plan.toml")

	assert.ErrorIs(t, err, ErrMissingPlan)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_View_BeforeReady(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app := newTestApp(t)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Nil(t, cmd)
	assert.True(t, model.(*App).Ready())
	assert.Contains(t, app.View(), "entry.1")
}

func TestApp_Update_CtrlC(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_QuitMessage(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_HelpRoundTrip(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(80, 24)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "fill to 100%")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewEditor, app.CurrentView())
}

func TestApp_SaveWritesPlan(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, cmd)
	saved, ok := cmd().(messages.PlanSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)

	loaded, err := file.NewPlanStore().Load(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, "entry.1", loaded.Fields[0].ID)
}
