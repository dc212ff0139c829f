package cmd

import (
	"errors"
	"fmt"

	"github.com/sonar-libras/sonar/internal/applicator"
	"github.com/sonar-libras/sonar/pkg/models"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}

		job, err := fetchJob(cmd, application, args[0])
		if err != nil {
			return err
		}

		s, _ := application.Identity.Current()
		app, err := application.Applications.Apply(cmd.Context(), s, job)
		switch {
		case errors.Is(err, applicator.ErrUnauthenticated):
			return fmt.Errorf("log in to apply to jobs")
		case errors.Is(err, applicator.ErrWrongAccountCategory):
			return fmt.Errorf("company accounts cannot apply to jobs")
		case errors.Is(err, applicator.ErrAlreadyApplied):
			cmd.Println("You have already applied to this job.")
			return nil
		case err != nil:
			return fmt.Errorf("apply: %w", err)
		}

		cmd.Printf("✓ Applied to %s at %s\n", app.JobTitle, app.Company)
		if job.ApplyURL != "" {
			cmd.Printf("  %s %s\n", labelStyle.Render("Complete your application at:"), job.ApplyURL)
		}
		return nil
	},
}

var applicationCmd = &cobra.Command{
	Use:     "application",
	Aliases: []string{"applications"},
	Short:   "Track job applications",
}

var listApplicationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the applications you sent",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		apps, err := application.Applications.Applications(cmd.Context(), s.ID)
		if err != nil {
			return fmt.Errorf("fetch applications: %w", err)
		}
		if len(apps) == 0 {
			cmd.Println("No applications yet. Find jobs with 'sonar job list'.")
			return nil
		}

		cmd.Println(titleStyle.Render("Minhas Candidaturas"))
		printApplications(cmd, apps, false)
		return nil
	},
}

var receivedApplicationsCmd = &cobra.Command{
	Use:   "received",
	Short: "List applications to your company's postings",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		var apps []models.JobApplication
		if jobID, _ := cmd.Flags().GetString("job"); jobID != "" {
			apps, err = application.Applications.ApplicationsForJob(cmd.Context(), s, jobID)
		} else {
			apps, err = application.Applications.Received(cmd.Context(), s)
		}
		if err != nil {
			return fmt.Errorf("fetch applications: %w", err)
		}
		if len(apps) == 0 {
			cmd.Println("No applications received yet.")
			return nil
		}

		cmd.Println(titleStyle.Render("Candidaturas Recebidas"))
		printApplications(cmd, apps, true)
		return nil
	},
}

var statusApplicationCmd = &cobra.Command{
	Use:   "status <applicant-id> <application-id> <status>",
	Short: "Review an application: visualizado, aprovado or rejeitado",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		updated, err := application.Applications.SetStatus(cmd.Context(), s, args[0], args[1], models.ApplicationStatus(args[2]))
		if err != nil {
			return fmt.Errorf("update application: %w", err)
		}

		cmd.Printf("✓ Application %s is now %s\n", updated.ID, titleCase(string(updated.Status)))
		return nil
	},
}

func printApplications(cmd *cobra.Command, apps []models.JobApplication, withApplicant bool) {
	for _, a := range apps {
		cmd.Printf("\n%s %s\n", labelStyle.Render("["+a.ID+"]"), a.JobTitle)
		field(cmd, "   ", "Company", a.Company)
		if withApplicant {
			field(cmd, "   ", "Applicant", a.UserID)
		}
		field(cmd, "   ", "Status", titleCase(string(a.Status)))
		field(cmd, "   ", "Applied", a.AppliedAt.Format("02/01/2006"))
	}
}

func init() {
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(applicationCmd)
	applicationCmd.AddCommand(listApplicationsCmd)
	applicationCmd.AddCommand(receivedApplicationsCmd)
	applicationCmd.AddCommand(statusApplicationCmd)

	receivedApplicationsCmd.Flags().String("job", "", "Only applications to this job")
}
