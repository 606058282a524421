// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewEditor is the plan editor.
	ViewEditor ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// PlanSaved is sent when a save attempt finishes.
type PlanSaved struct {
	Path string
	Err  error
}

// ErrorOccurred is sent when an error happens.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
