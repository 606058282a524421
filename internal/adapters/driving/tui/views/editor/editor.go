// Package editor provides the plan editing view for the TUI.
package editor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/formmap/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/formmap/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/formmap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/formmap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/formmap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

const (
	gaugeWidth   = 20
	smallStep    = 1
	largeStep    = 10
	maxPercent   = 100
	quitWarning  = "unsaved changes, press q again to quit"
	openEndedRow = -1
)

// row addresses one selectable line: an option of an enumerated field,
// or an open-ended field as a whole (option == openEndedRow).
type row struct {
	field  int
	option int
}

// View edits the weights and answers of a plan.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	planService driving.PlanService

	plan *domain.Plan
	path string
	rows []row

	cursor    int
	dirty     bool
	quitArmed bool

	input  *input.ResponseInput
	status *status.Bar

	width  int
	height int
}

// NewView creates an editor for plan, saved to path.
func NewView(s *styles.Styles, planService driving.PlanService, plan *domain.Plan, path string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	v := &View{
		styles:      s,
		keymap:      km,
		planService: planService,
		plan:        plan,
		path:        path,
		input:       input.NewResponseInput(s),
		status:      status.NewBar(s, km),
	}
	v.rows = buildRows(plan)
	return v
}

func buildRows(plan *domain.Plan) []row {
	var rows []row
	for i := range plan.Fields {
		f := &plan.Fields[i]
		if f.OpenEnded {
			rows = append(rows, row{field: i, option: openEndedRow})
			continue
		}
		for j := range f.Options {
			rows = append(rows, row{field: i, option: j})
		}
	}
	return rows
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PlanSaved:
		if msg.Err != nil {
			v.status.Set(status.StateError, msg.Err.Error())
			return v, nil
		}
		v.dirty = false
		v.status.Set(status.StateSaved, msg.Path)
		return v, nil

	case messages.ErrorOccurred:
		v.status.Set(status.StateError, msg.Err.Error())
		return v, nil

	case tea.KeyMsg:
		if v.input.Focused() {
			return v.handleInputKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, v.keymap.Quit) {
		if v.dirty && !v.quitArmed {
			v.quitArmed = true
			v.status.Set(status.StateModified, quitWarning)
			return v, nil
		}
		return v, func() tea.Msg { return messages.Quit{} }
	}
	v.quitArmed = false

	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case keymap.Matches(k, v.keymap.Increase):
		v.adjust(smallStep)
	case keymap.Matches(k, v.keymap.Decrease):
		v.adjust(-smallStep)
	case keymap.Matches(k, v.keymap.IncreaseMore):
		v.adjust(largeStep)
	case keymap.Matches(k, v.keymap.DecreaseMore):
		v.adjust(-largeStep)
	case keymap.Matches(k, v.keymap.Fill):
		v.adjust(maxPercent)
	case keymap.Matches(k, v.keymap.AddResponse):
		if r, ok := v.current(); ok && r.option == openEndedRow {
			v.status.Set(status.StateEditing, "")
			return v, v.input.Focus()
		}
	case keymap.Matches(k, v.keymap.ClearResponses):
		v.setResponses(nil)
	case keymap.Matches(k, v.keymap.Save):
		return v, v.save()
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		v.input.Blur()
		v.restoreStatus()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Confirm):
		value := v.input.Value()
		v.input.Blur()
		v.restoreStatus()
		if value == "" {
			return v, nil
		}
		if r, ok := v.current(); ok {
			responses := append([]string{}, v.plan.Fields[r.field].Responses...)
			v.setResponses(append(responses, value))
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// adjust moves the selected option by delta points. Raising stops at what
// keeps the field total within 100; lowering stops at zero.
func (v *View) adjust(delta int) {
	r, ok := v.current()
	if !ok || r.option == openEndedRow {
		return
	}
	f := &v.plan.Fields[r.field]
	o := &f.Options[r.option]

	if delta > 0 {
		delta = min(delta, maxPercent-f.PercentTotal())
	} else {
		delta = max(delta, -o.Percent)
	}
	if delta == 0 {
		return
	}
	o.Percent += delta
	v.markDirty()
}

func (v *View) setResponses(responses []string) {
	r, ok := v.current()
	if !ok || r.option != openEndedRow {
		return
	}
	if err := v.planService.SetResponses(v.plan, v.plan.Fields[r.field].ID, responses); err != nil {
		v.status.Set(status.StateError, err.Error())
		return
	}
	v.markDirty()
}

func (v *View) save() tea.Cmd {
	plan, path, svc := v.plan, v.path, v.planService
	return func() tea.Msg {
		return messages.PlanSaved{Path: path, Err: svc.Save(path, plan)}
	}
}

func (v *View) markDirty() {
	v.dirty = true
	v.status.Set(status.StateModified, "")
}

func (v *View) restoreStatus() {
	if v.dirty {
		v.status.Set(status.StateModified, "")
		return
	}
	v.status.Set(status.StateReady, "")
}

func (v *View) current() (row, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return row{}, false
	}
	return v.rows[v.cursor], true
}

// View renders the editor.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("formmap plan editor"))
	b.WriteString("\n")
	if v.plan.FormURL != "" {
		b.WriteString(v.styles.Muted.Render(v.plan.FormURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	lastField := -1
	for i, r := range v.rows {
		f := &v.plan.Fields[r.field]
		if r.field != lastField {
			lastField = r.field
			b.WriteString(v.renderFieldHeader(f))
			b.WriteString("\n")
		}
		line := v.renderRow(f, r)
		if i == v.cursor {
			line = v.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if v.input.Focused() {
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.status.View())
	return b.String()
}

func (v *View) renderFieldHeader(f *domain.PlanField) string {
	header := v.styles.Field.Render(f.ID)
	if f.OpenEnded {
		return header + v.styles.Muted.Render("  free text")
	}
	total := f.PercentTotal()
	return header + "  " + v.styles.Total(total).Render(fmt.Sprintf("%d%%", total))
}

func (v *View) renderRow(f *domain.PlanField, r row) string {
	if r.option == openEndedRow {
		if len(f.Responses) == 0 {
			return v.styles.Muted.Render("no answers, submitted blank")
		}
		return v.styles.Normal.Render(fmt.Sprintf("%d answers: %s", len(f.Responses), strings.Join(f.Responses, ", ")))
	}
	o := f.Options[r.option]
	return fmt.Sprintf("%s %3d%%  %s", v.styles.Gauge(o.Percent, gaugeWidth), o.Percent, o.Label)
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.status.SetWidth(width)
}

// Cursor returns the selected row index.
func (v *View) Cursor() int {
	return v.cursor
}

// Plan returns the plan being edited.
func (v *View) Plan() *domain.Plan {
	return v.plan
}

// Dirty reports unsaved changes.
func (v *View) Dirty() bool {
	return v.dirty
}

// Editing reports whether an answer is being typed.
func (v *View) Editing() bool {
	return v.input.Focused()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}
