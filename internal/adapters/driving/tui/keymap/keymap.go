// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the plan editor.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up moves to the previous row.
	Up key.Binding

	// Down moves to the next row.
	Down key.Binding

	// Increase raises the selected option by one point.
	Increase key.Binding

	// Decrease lowers the selected option by one point.
	Decrease key.Binding

	// IncreaseMore raises the selected option by ten points.
	IncreaseMore key.Binding

	// DecreaseMore lowers the selected option by ten points.
	DecreaseMore key.Binding

	// Fill gives the selected option whatever its field has left.
	Fill key.Binding

	// AddResponse starts typing a new answer for an open-ended field.
	AddResponse key.Binding

	// ClearResponses drops every answer of an open-ended field.
	ClearResponses key.Binding

	// Save writes the plan.
	Save key.Binding

	// Confirm accepts typed input.
	Confirm key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "+1%"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "-1%"),
		),
		IncreaseMore: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "+10%"),
		),
		DecreaseMore: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "-10%"),
		),
		Fill: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "fill to 100%"),
		),
		AddResponse: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add answer"),
		),
		ClearResponses: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear answers"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Help, k.Quit}
}

// InputHelp returns keybindings shown while typing an answer.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Increase, k.Decrease, k.IncreaseMore, k.DecreaseMore, k.Fill},
		{k.AddResponse, k.ClearResponses},
		{k.Save, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
