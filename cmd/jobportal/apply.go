package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-portal/internal/types"
)

var applyReq types.ApplyRequest

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Quick-apply to a job posting",
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyReq.JobseekerEmail, "email", "", "Your email")
	applyCmd.Flags().StringVar(&applyReq.RecruiterEmail, "recruiter-email", "", "Contact email of the posting")
	applyCmd.Flags().StringVar(&applyReq.JobTitle, "title", "", "Job title of the posting")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	if err := applyReq.Validate(); err != nil {
		return fmt.Errorf("invalid application: %w", err)
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if _, err := e.client().Apply(cmd.Context(), &applyReq); err != nil {
		return fmt.Errorf("application not submitted: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied to %s\n", applyReq.JobTitle)
	return nil
}
