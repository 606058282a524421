// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/formmap/internal/adapters/driving/tui/styles"
)

// ResponseInput wraps a bubbles textinput for typing open-ended answers.
type ResponseInput struct {
	textinput textinput.Model
	styles    *styles.Styles
}

// NewResponseInput creates a blurred answer input.
func NewResponseInput(s *styles.Styles) *ResponseInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Type an answer..."
	ti.CharLimit = 512
	ti.Width = 50

	return &ResponseInput{
		textinput: ti,
		styles:    s,
	}
}

// Update handles input messages.
func (r *ResponseInput) Update(msg tea.Msg) (*ResponseInput, tea.Cmd) {
	var cmd tea.Cmd
	r.textinput, cmd = r.textinput.Update(msg)
	return r, cmd
}

// View renders the input with its label.
func (r *ResponseInput) View() string {
	label := r.styles.Title.Render("Answer: ")
	field := r.styles.InputField.Render(r.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the trimmed input value.
func (r *ResponseInput) Value() string {
	return strings.TrimSpace(r.textinput.Value())
}

// SetValue replaces the input value.
func (r *ResponseInput) SetValue(value string) {
	r.textinput.SetValue(value)
}

// Focus starts accepting keystrokes.
func (r *ResponseInput) Focus() tea.Cmd {
	return r.textinput.Focus()
}

// Blur stops accepting keystrokes and clears the value.
func (r *ResponseInput) Blur() {
	r.textinput.Blur()
	r.textinput.Reset()
}

// Focused reports whether the input accepts keystrokes.
func (r *ResponseInput) Focused() bool {
	return r.textinput.Focused()
}
