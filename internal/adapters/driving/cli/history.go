package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/formmap/internal/adapters/driven/sink"
	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

var (
	historyLimit   int
	historyJSON    bool
	historyCompact bool
	historyLatest  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved extractions",
	Long:  `List, show and delete extractions saved in the local history database.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved extractions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id|ref>",
	Short: "Print the field map of a saved extraction",
	Long: `Print the field map of a saved extraction as JSON.

With --latest the argument is a form reference and the newest extraction
of that form is shown.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved extraction",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of extractions")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyShowCmd.Flags().BoolVar(&historyCompact, "compact", false, "print JSON on a single line")
	historyShowCmd.Flags().BoolVar(&historyLatest, "latest", false, "treat the argument as a form reference")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func historyService() (driving.HistoryService, error) {
	s, err := requireServices()
	if err != nil {
		return nil, err
	}
	if s.History == nil {
		return nil, errors.New("history is disabled (set history.enabled = true)")
	}
	return s.History, nil
}

type historyEntry struct {
	ID         string    `json:"id"`
	Ref        string    `json:"ref"`
	Strategy   string    `json:"strategy"`
	FieldCount int       `json:"field_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	svc, err := historyService()
	if err != nil {
		return err
	}

	list, err := svc.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		entries := make([]historyEntry, len(list))
		for i := range list {
			entries[i] = historyEntry{
				ID:         list[i].ID,
				Ref:        list[i].Ref,
				Strategy:   list[i].Strategy.String(),
				FieldCount: list[i].FieldCount(),
				CreatedAt:  list[i].CreatedAt,
			}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(list) == 0 {
		fmt.Fprintln(out, "No extractions saved.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFIELDS\tREF")
	for i := range list {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			list[i].ID,
			list[i].CreatedAt.Local().Format("2006-01-02 15:04"),
			list[i].FieldCount(),
			list[i].Ref,
		)
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	svc, err := historyService()
	if err != nil {
		return err
	}

	var e *domain.Extraction
	if historyLatest {
		e, err = svc.Latest(cmd.Context(), args[0])
	} else {
		e, err = svc.Get(cmd.Context(), args[0])
	}
	if err != nil {
		return err
	}

	data, err := sink.Encode(e.Fields, historyCompact)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	svc, err := historyService()
	if err != nil {
		return err
	}
	if err := svc.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
