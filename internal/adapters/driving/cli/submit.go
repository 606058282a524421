package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

var (
	submitCount int
	submitQuiet bool
)

var submitCmd = &cobra.Command{
	Use:   "submit <plan>",
	Short: "Post generated responses to a form",
	Long: `Post responses generated from a plan to the form's formResponse
endpoint. Option shares follow the plan's percentages exactly across the
run; free-text fields draw from their candidate answers.

Requests are rate limited by submit.rate_per_second.`,
	Example: `  formmap submit plan.toml -n 50`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSubmit,
}

func init() {
	submitCmd.Flags().IntVarP(&submitCount, "count", "n", 0, "number of responses to post")
	submitCmd.Flags().BoolVarP(&submitQuiet, "quiet", "q", false, "do not print progress")
	_ = submitCmd.MarkFlagRequired("count")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Submit == nil || s.Plan == nil {
		return errors.New("submit service not configured")
	}

	plan, err := s.Plan.Load(args[0])
	if err != nil {
		return err
	}

	var progress driving.SubmitProgress
	if !submitQuiet {
		errOut := cmd.ErrOrStderr()
		progress = func(done, total, succeeded int) {
			fmt.Fprintf(errOut, "\r%d/%d sent, %d accepted", done, total, succeeded)
			if done == total {
				fmt.Fprintln(errOut)
			}
		}
	}

	report, err := s.Submit.Run(cmd.Context(), plan, submitCount, progress)
	if report != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Posted %d responses to %s: %d accepted, %d failed\n",
			report.Total, report.Endpoint, report.Succeeded, report.Failed)
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d responses failed", report.Failed, report.Total)
	}
	return nil
}
