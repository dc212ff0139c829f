package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sonar-libras/sonar/internal/app"
	"github.com/sonar-libras/sonar/internal/applicator"
	"github.com/sonar-libras/sonar/internal/matcher"
	"github.com/sonar-libras/sonar/pkg/models"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse jobs interactively",
	Long:  "Browse and search the active job postings and apply to them from an interactive menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runTUI(cmd, application)
	},
}

func runTUI(cmd *cobra.Command, application *app.App) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	criteria := matcher.Criteria{}

	for {
		all, err := application.Jobs.ListJobs(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}
		jobs := activeOnly(matcher.FilterJobs(all, criteria))

		cmd.Println(titleStyle.Render("Job Browser"))
		if criteria.Query != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Search:"), criteria.Query)
		}
		cmd.Println("Enter a job number to view details, '/text' to search, '/' to clear or 'q' to quit")
		cmd.Println()

		for i, job := range jobs {
			cmd.Printf("%d. %s at %s\n", i+1, job.Title, job.Company)
		}

		cmd.Print("\n> ")
		input, readErr := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch {
		case input == "q" || input == "Q":
			return nil
		case strings.HasPrefix(input, "/"):
			criteria.Query = strings.TrimPrefix(input, "/")
			continue
		}

		jobNum, err := strconv.Atoi(input)
		if err != nil || jobNum < 1 || jobNum > len(jobs) {
			if readErr != nil {
				return nil
			}
			cmd.Println("Invalid selection")
			continue
		}

		if done := displayJobDetails(cmd, application, jobs[jobNum-1], reader); done {
			return nil
		}
	}
}

// displayJobDetails shows one job until the user goes back. It reports true
// when the input is exhausted.
func displayJobDetails(cmd *cobra.Command, application *app.App, job models.JobPosting, reader *bufio.Reader) bool {
	for {
		cmd.Println("\n" + strings.Repeat("=", 60))
		cmd.Println(titleStyle.Render(job.Title))
		field(cmd, "", "Company", job.Company)
		field(cmd, "", "Location", job.Location)
		field(cmd, "", "Contract", string(job.Type)+" · "+string(job.Mode))
		field(cmd, "", "Salary", job.Salary)
		if job.Summary != "" {
			cmd.Println(labelStyle.Render("\nSummary:"))
			cmd.Println(job.Summary)
		}

		cmd.Println("\nOptions:")
		cmd.Println("  [a] Apply to this job")
		cmd.Println("  [b] Back to list")
		cmd.Print("\n> ")

		choice, err := reader.ReadString('\n')
		choice = strings.TrimSpace(strings.ToLower(choice))

		switch choice {
		case "a":
			s, _ := application.Identity.Current()
			_, applyErr := application.Applications.Apply(cmd.Context(), s, job)
			switch {
			case applyErr == nil:
				cmd.Println("✓ Application sent!")
			case errors.Is(applyErr, applicator.ErrAlreadyApplied):
				cmd.Println("You have already applied to this job.")
			case errors.Is(applyErr, applicator.ErrUnauthenticated):
				cmd.Println("Log in to apply to jobs.")
			case errors.Is(applyErr, applicator.ErrWrongAccountCategory):
				cmd.Println("Company accounts cannot apply to jobs.")
			default:
				cmd.Printf("Error: %v\n", applyErr)
			}
			return err != nil
		case "b":
			return err != nil
		default:
			if err != nil {
				return true
			}
			cmd.Println("Invalid choice")
		}
	}
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
