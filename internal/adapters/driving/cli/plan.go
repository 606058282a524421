package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

var (
	planOutput string
	planForce  bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build and edit response plans",
	Long: `A plan lists every field of a form with the share of generated
responses that should choose each option, and candidate answers for
free-text fields. Plans are TOML files; edit them by hand, with the
subcommands below, or interactively with "formmap tui".`,
}

var planInitCmd = &cobra.Command{
	Use:   "init <ref>",
	Short: "Create an evenly weighted plan for a form",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanInit,
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan>",
	Short: "Print a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanShow,
}

var planSetCmd = &cobra.Command{
	Use:     "set <plan> <field> <percentages>",
	Short:   "Set the option weights of a field",
	Example: `  formmap plan set plan.toml entry.123 "40, 35, 25"`,
	Args:    cobra.ExactArgs(3),
	RunE:    runPlanSet,
}

var planAnswersCmd = &cobra.Command{
	Use:     "answers <plan> <field> [answer...]",
	Short:   "Replace the candidate answers of a free-text field",
	Example: `  formmap plan answers plan.toml entry.456 "Great" "Could be better"`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runPlanAnswers,
}

func init() {
	planInitCmd.Flags().StringVarP(&planOutput, "output", "o", "plan.toml", "plan file to write")
	planInitCmd.Flags().BoolVar(&planForce, "force", false, "overwrite an existing plan file")
	planCmd.AddCommand(planInitCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planSetCmd)
	planCmd.AddCommand(planAnswersCmd)
	rootCmd.AddCommand(planCmd)
}

func planService() (driving.PlanService, error) {
	s, err := requireServices()
	if err != nil {
		return nil, err
	}
	if s.Plan == nil {
		return nil, errors.New("plan service not configured")
	}
	return s.Plan, nil
}

func runPlanInit(cmd *cobra.Command, args []string) error {
	svc, err := planService()
	if err != nil {
		return err
	}

	if !planForce {
		if _, err := os.Stat(planOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", planOutput)
		}
	}

	plan, err := svc.Init(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := svc.Save(planOutput, plan); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d fields\n", planOutput, len(plan.Fields))
	if plan.FormURL == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Set form_url before submitting.")
	}
	return nil
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	svc, err := planService()
	if err != nil {
		return err
	}
	plan, err := svc.Load(args[0])
	if err != nil {
		return err
	}
	writePlan(cmd.OutOrStdout(), plan)
	return nil
}

func runPlanSet(cmd *cobra.Command, args []string) error {
	svc, err := planService()
	if err != nil {
		return err
	}
	path, fieldID := args[0], args[1]

	plan, err := svc.Load(path)
	if err != nil {
		return err
	}
	if err := svc.SetPercentages(plan, fieldID, args[2]); err != nil {
		return err
	}
	if err := svc.Save(path, plan); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", fieldID)
	return nil
}

func runPlanAnswers(cmd *cobra.Command, args []string) error {
	svc, err := planService()
	if err != nil {
		return err
	}
	path, fieldID := args[0], args[1]

	plan, err := svc.Load(path)
	if err != nil {
		return err
	}
	if err := svc.SetResponses(plan, fieldID, args[2:]); err != nil {
		return err
	}
	if err := svc.Save(path, plan); err != nil {
		return err
	}
	f, _ := plan.Field(fieldID)
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%d answers)\n", fieldID, len(f.Responses))
	return nil
}

func writePlan(w io.Writer, plan *domain.Plan) {
	if plan.FormURL != "" {
		fmt.Fprintf(w, "Form: %s\n", plan.FormURL)
	}
	fmt.Fprintf(w, "Fields: %d\n\n", len(plan.Fields))

	for i := range plan.Fields {
		f := &plan.Fields[i]
		if f.OpenEnded {
			if len(f.Responses) == 0 {
				fmt.Fprintf(w, "%s  free text, submitted blank\n", f.ID)
			} else {
				fmt.Fprintf(w, "%s  free text: %s\n", f.ID, strings.Join(f.Responses, " | "))
			}
			continue
		}
		fmt.Fprintf(w, "%s\n", f.ID)
		for _, o := range f.Options {
			fmt.Fprintf(w, "  %3d%%  %s\n", o.Percent, o.Label)
		}
	}
}
