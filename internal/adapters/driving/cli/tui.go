package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/formmap/internal/adapters/driving/tui"
)

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

var tuiCmd = &cobra.Command{
	Use:   "tui <plan>",
	Short: "Edit a plan interactively",
	Long: `Open a plan in the interactive editor.

Controls:
  ↑/k, ↓/j  Move between options
  →/l, ←/h  Raise or lower the selected option by 1%
  ], [      Raise or lower by 10%
  =         Give the option whatever its field has left
  a, x      Add or clear answers of a free-text field
  s         Save
  ?         Help
  q         Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if !stdinIsTerminal() {
		return errors.New("the editor needs an interactive terminal")
	}

	svc, err := planService()
	if err != nil {
		return err
	}
	plan, err := svc.Load(args[0])
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(svc), plan, args[0])
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
