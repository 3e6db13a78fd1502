package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-portal/internal/portal"
	"github.com/jonathan/job-portal/internal/ranking"
	"github.com/jonathan/job-portal/internal/types"
)

var (
	jobsEmail    string
	jobsWindow   string
	jobsCriteria ranking.Criteria
	jobsPost     types.CreateJobPostingRequest
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Show jobs ranked against your resume",
	Long: `Fetch all job postings and the resume stored for --email, then print the
weekly, monthly and yearly views ranked by how many of your skills each
posting asks for. Filters narrow the postings before ranking.`,
	RunE: runJobs,
}

var jobsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a job (recruiter or admin token required)",
	RunE:  runJobsPost,
}

func init() {
	jobsCmd.Flags().StringVar(&jobsEmail, "email", "", "Email of the resume to rank against (required)")
	jobsCmd.Flags().StringVar(&jobsWindow, "window", "", "Only print one view: weekly, monthly or yearly")
	jobsCmd.Flags().StringVar(&jobsCriteria.Search, "search", "", "Match title, company or location")
	jobsCmd.Flags().StringVar(&jobsCriteria.JobType, "job-type", "", "Full-Time, Part-Time, Remote or Contract")
	jobsCmd.Flags().StringVar(&jobsCriteria.Location, "location", "", "Location substring")
	jobsCmd.Flags().StringVar(&jobsCriteria.SalaryRange, "salary-range", "",
		"Salary range min-max, e.g. "+strings.Join(ranking.SalaryRanges[:2], ", "))
	_ = jobsCmd.MarkFlagRequired("email")

	jobsPostCmd.Flags().StringVar(&jobsPost.Title, "title", "", "Job title")
	jobsPostCmd.Flags().StringVar(&jobsPost.Company, "company", "", "Company name")
	jobsPostCmd.Flags().StringVar(&jobsPost.Location, "location", "", "Location")
	jobsPostCmd.Flags().StringVar(&jobsPost.JobType, "job-type", types.JobTypeFullTime, "Full-Time, Part-Time, Remote or Contract")
	jobsPostCmd.Flags().IntVar(&jobsPost.Salary, "salary", 0, "Yearly salary")
	jobsPostCmd.Flags().StringVar(&jobsPost.Description, "description", "", "Job description")
	jobsPostCmd.Flags().StringVar(&jobsPost.ProjectDetails, "project-details", "", "Project details")
	jobsPostCmd.Flags().StringVar(&jobsPost.SkillsRequired, "skills", "", "Required skills, comma separated")
	jobsPostCmd.Flags().StringVar(&jobsPost.RecruiterEmail, "recruiter-email", "", "Contact email for applications")

	jobsCmd.AddCommand(jobsPostCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	windows := ranking.Windows
	if jobsWindow != "" {
		w, ok := windowByName(jobsWindow)
		if !ok {
			return fmt.Errorf("unknown window %q", jobsWindow)
		}
		windows = []ranking.Window{w}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	view, err := portal.LoadJobsView(ctx, e.client(), jobsEmail, jobsCriteria, time.Now())
	if err != nil {
		return err
	}
	return printJobsView(cmd.OutOrStdout(), view, windows)
}

func runJobsPost(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if err := jobsPost.Validate(); err != nil {
		return fmt.Errorf("invalid job posting: %w", err)
	}

	posting, err := e.client().CreateJob(cmd.Context(), &jobsPost)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Posted %q at %s (%s)\n", posting.Title, posting.Company, posting.ID)
	return nil
}

func windowByName(name string) (ranking.Window, bool) {
	for _, w := range ranking.Windows {
		if strings.EqualFold(w.Name, name) {
			return w, true
		}
	}
	return ranking.Window{}, false
}

// printJobsView writes one table per window.
func printJobsView(out io.Writer, view *portal.JobsView, windows []ranking.Window) error {
	if view.Skills.Empty() {
		fmt.Fprintln(out, "No skills on your resume; jobs are ordered by date.")
	} else {
		fmt.Fprintf(out, "Ranking against: %s\n", strings.Join(view.Skills, ", "))
	}

	for _, w := range windows {
		jobs := view.ByWindow(w)
		fmt.Fprintf(out, "\n%s (last %d days): %d jobs\n", strings.ToUpper(w.Name[:1])+w.Name[1:], w.Days, len(jobs))
		if len(jobs) == 0 {
			continue
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MATCH\tTITLE\tCOMPANY\tLOCATION\tTYPE\tSALARY\tPOSTED\tCONTACT")
		for _, j := range jobs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				j.Relevance, j.Title, j.Company, j.Location, j.JobType,
				strconv.Itoa(j.Salary), j.CreatedAt.Format(time.DateOnly), j.RecruiterEmail)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write jobs: %w", err)
		}
	}
	return nil
}
