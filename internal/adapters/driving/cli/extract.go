package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/formmap/internal/adapters/driven/blob"
	"github.com/custodia-labs/formmap/internal/adapters/driven/sink"
	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
	"github.com/custodia-labs/formmap/internal/logger"
)

var (
	extractJSON      bool
	extractCompact   bool
	extractClipboard bool
	extractNoHistory bool
	extractWatch     bool
	extractProvider  string
)

// newClipboardSink is replaced in tests.
var newClipboardSink = func() clipboardSink { return sink.NewClipboardSink() }

type clipboardSink interface {
	driven.FieldMapSink
	Available() bool
}

var extractCmd = &cobra.Command{
	Use:   "extract <ref>",
	Short: "Print the field map of a form",
	Long: `Extract the submittable fields of a form.

<ref> is a public viewform URL, a saved page or JSON dump of the form
data, or "-" to read from stdin.

The field map is printed as JSON when --json is given or stdout is not a
terminal, and as a readable summary otherwise.`,
	Example: `  formmap extract https://docs.google.com/forms/d/e/<id>/viewform
  formmap extract form.json --compact
  curl -s <url> | formmap extract - --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print JSON even on a terminal")
	extractCmd.Flags().BoolVar(&extractCompact, "compact", false, "print JSON on a single line")
	extractCmd.Flags().BoolVar(&extractClipboard, "clipboard", false, "also copy the JSON to the clipboard")
	extractCmd.Flags().BoolVar(&extractNoHistory, "no-history", false, "do not save this extraction")
	extractCmd.Flags().BoolVarP(&extractWatch, "watch", "w", false, "re-extract a local file whenever it changes")
	extractCmd.Flags().StringVar(&extractProvider, "provider", "", "fetch provider for URLs (http, browser)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ref := args[0]

	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.NewExtract == nil {
		return errors.New("extract service not configured")
	}

	opts := ExtractOptions{History: !extractNoHistory}
	if extractProvider != "" {
		opts.Provider = domain.FetchProvider(extractProvider)
		if !opts.Provider.IsValid() {
			return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, extractProvider)
		}
	}

	svc, err := s.NewExtract(opts)
	if err != nil {
		return err
	}

	out, err := extractSink(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if !extractWatch {
		_, err = svc.ExtractTo(cmd.Context(), ref, out)
		return err
	}

	if ref == domain.StdinRef || domain.IsRemoteRef(ref) {
		return fmt.Errorf("%w: --watch needs a local file", domain.ErrInvalidInput)
	}
	return watchExtract(cmd, svc, ref, out)
}

// extractSink picks the output for the flags and terminal.
func extractSink(w io.Writer) (driven.FieldMapSink, error) {
	var primary driven.FieldMapSink
	if extractJSON || extractCompact || !isTerminal(w) {
		primary = sink.NewWriterSink(w, extractCompact)
	} else {
		primary = summarySink{w: w}
	}

	if !extractClipboard {
		return primary, nil
	}
	cb := newClipboardSink()
	if !cb.Available() {
		return nil, errors.New("clipboard is not available on this system")
	}
	return sink.Multi{primary, cb}, nil
}

func watchExtract(cmd *cobra.Command, svc driving.ExtractService, ref string, out driven.FieldMapSink) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	errOut := cmd.ErrOrStderr()

	run := func() {
		if _, err := svc.ExtractTo(ctx, ref, out); err != nil {
			fmt.Fprintf(errOut, "extract failed: %v\n", err)
		}
	}

	run()
	fmt.Fprintf(errOut, "watching %s (ctrl+c to stop)\n", ref)
	err := blob.Watch(ctx, ref, blob.DefaultDebounce, func() {
		logger.Info("change detected in %s", ref)
		run()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// summarySink prints a readable overview of an extraction.
type summarySink struct {
	w io.Writer
}

func (s summarySink) Write(_ context.Context, e *domain.Extraction) error {
	return writeSummary(s.w, e)
}

func writeSummary(w io.Writer, e *domain.Extraction) error {
	fmt.Fprintf(w, "%d fields from %d questions (%s)\n", e.FieldCount(), e.Questions, e.Strategy)
	if e.ID != "" {
		fmt.Fprintf(w, "extraction %s\n", e.ID)
	}
	fmt.Fprintln(w)

	for _, f := range e.Fields.Fields() {
		if f.Entry.OpenEnded {
			fmt.Fprintf(w, "  %-16s free text\n", f.ID)
			continue
		}
		if len(f.Entry.Options) == 0 {
			fmt.Fprintf(w, "  %-16s (no options)\n", f.ID)
			continue
		}
		fmt.Fprintf(w, "  %-16s %s\n", f.ID, strings.Join(f.Entry.Options, " | "))
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
