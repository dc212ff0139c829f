package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sonar-libras/sonar/internal/app"
	"github.com/sonar-libras/sonar/internal/forms"
	"github.com/sonar-libras/sonar/internal/jobs"
	"github.com/sonar-libras/sonar/internal/matcher"
	"github.com/sonar-libras/sonar/pkg/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Browse and manage job postings",
	Long:  "List, search and view job postings. Company accounts can also publish, edit, pause and delete their own.",
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings",
	Example: `  sonar job list
  sonar job list --query react --mode Remoto
  sonar job list --location SP --type CLT`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}

		all, err := application.Jobs.ListJobs(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}

		c := matcher.Criteria{}
		c.Query, _ = cmd.Flags().GetString("query")
		c.Location, _ = cmd.Flags().GetString("location")
		typ, _ := cmd.Flags().GetString("type")
		mode, _ := cmd.Flags().GetString("mode")
		c.Type, c.Mode = models.EmploymentType(typ), models.WorkMode(mode)
		showPaused, _ := cmd.Flags().GetBool("all")

		found := matcher.FilterJobs(all, c)
		if !showPaused {
			found = activeOnly(found)
		}

		if len(found) == 0 {
			cmd.Println("No jobs found.")
			return nil
		}

		cmd.Println(titleStyle.Render(fmt.Sprintf("%d vagas encontradas", len(found))))
		printJobs(cmd, found)
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show details of a specific job",
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

		cmd.Println(titleStyle.Render(job.Title))
		field(cmd, "", "Company", job.Company)
		field(cmd, "", "Location", job.Location)
		field(cmd, "", "Type", string(job.Type))
		field(cmd, "", "Mode", string(job.Mode))
		field(cmd, "", "Seniority", job.Seniority)
		field(cmd, "", "Salary", job.Salary)
		field(cmd, "", "Posted", job.PostedAt)
		field(cmd, "", "Deadline", job.Deadline)
		field(cmd, "", "Apply at", job.ApplyURL)
		field(cmd, "", "Contact", job.Email)
		if len(job.Tags) > 0 {
			field(cmd, "", "Tags", strings.Join(job.Tags, ", "))
		}
		if !job.Active() {
			cmd.Println(mutedStyle.Render("This posting is paused."))
		}

		for _, section := range []struct{ label, text string }{
			{"Summary", job.Summary},
			{"Description", job.Description},
			{"Responsibilities", job.Responsibilities},
			{"Requirements", job.Requirements},
			{"Benefits", job.Benefits},
		} {
			if section.text != "" {
				cmd.Println(labelStyle.Render("\n" + section.label + ":"))
				cmd.Println(section.text)
			}
		}

		if s, ok := application.Identity.Current(); ok {
			apps, err := application.Applications.Applications(cmd.Context(), s.ID)
			if err != nil {
				return err
			}
			for _, a := range apps {
				if a.JobID == job.ID {
					cmd.Printf("\n%s %s\n", labelStyle.Render("Application Status:"), titleCase(string(a.Status)))
					cmd.Printf("%s %s\n", labelStyle.Render("Applied At:"), a.AppliedAt.Format("02/01/2006"))
				}
			}
		}
		return nil
	},
}

var createJobCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a job posting (company accounts)",
	Example: `  sonar job create --title "Dev Go" --location "Recife, PE" --type CLT --mode Remoto \
    --summary "Vaga inclusiva" --description "..." --tags "Go, SQL" --accept-terms`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		form := forms.JobForm{Company: s.Name, Email: s.Email}
		readJobFlags(cmd.Flags(), &form)

		if err := application.Validator.Validate(form); err != nil {
			return err
		}

		job, err := application.Jobs.CreateJob(cmd.Context(), form.Fields(), s)
		if err != nil {
			return fmt.Errorf("create job: %w", err)
		}

		cmd.Printf("✓ Job published: %s (ID: %s)\n", job.Title, job.ID)
		return nil
	},
}

var editJobCmd = &cobra.Command{
	Use:   "edit <job-id>",
	Short: "Edit one of your job postings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		job, err := fetchJob(cmd, application, args[0])
		if err != nil {
			return err
		}

		form := forms.FormFromJob(job.JobFields)
		readJobFlags(cmd.Flags(), &form)
		if err := application.Validator.Validate(form); err != nil {
			return err
		}

		updated, err := application.Jobs.UpdateJob(cmd.Context(), s, job.ID, form.Fields())
		if err != nil {
			return fmt.Errorf("edit job: %w", err)
		}

		cmd.Printf("✓ Job updated: %s\n", updated.Title)
		return nil
	},
}

// fetchJob looks up a job, reporting a missing one as app.ErrNotFound
func fetchJob(cmd *cobra.Command, application *app.App, id string) (models.JobPosting, error) {
	job, err := application.Jobs.GetJob(cmd.Context(), id)
	if errors.Is(err, jobs.ErrJobNotFound) {
		return models.JobPosting{}, fmt.Errorf("%w: job %s", app.ErrNotFound, id)
	}
	if err != nil {
		return models.JobPosting{}, fmt.Errorf("fetch job: %w", err)
	}
	return job, nil
}

func jobStatusCmd(use, short, done string, status models.JobStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <job-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := appFrom(cmd)
			if err != nil {
				return err
			}
			s, err := application.Session()
			if err != nil {
				return err
			}
			err = application.Jobs.SetJobStatus(cmd.Context(), s, args[0], status)
			if errors.Is(err, jobs.ErrJobNotFound) {
				return fmt.Errorf("%w: job %s", app.ErrNotFound, args[0])
			}
			if err != nil {
				return fmt.Errorf("%s job: %w", use, err)
			}
			cmd.Printf("✓ Job %s %s\n", args[0], done)
			return nil
		},
	}
}

var deleteJobCmd = &cobra.Command{
	Use:   "delete <job-id>",
	Short: "Delete one of your job postings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		job, err := fetchJob(cmd, application, args[0])
		if err != nil {
			return err
		}
		if err := application.Jobs.DeleteJob(cmd.Context(), s, job.ID); err != nil {
			return fmt.Errorf("delete job: %w", err)
		}

		cmd.Printf("✓ Removed job: %s\n", job.Title)
		return nil
	},
}

var mineJobsCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the postings of your company",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		owned, err := application.Jobs.CompanyJobs(cmd.Context(), s.ID)
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}
		if len(owned) == 0 {
			cmd.Println("You have not published any job yet. Use 'sonar job create'.")
			return nil
		}

		cmd.Println(titleStyle.Render("Your Job Postings"))
		printJobs(cmd, owned)
		return nil
	},
}

var statsJobsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the company dashboard figures",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}
		if s.Category != models.CategoryCompany {
			return fmt.Errorf("%w: only company accounts have a dashboard", app.ErrUnauthorized)
		}

		stats, err := application.Applications.CompanyStats(cmd.Context(), s.ID)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Dashboard"))
		cmd.Printf("%s %d\n", labelStyle.Render("Job postings:"), stats.TotalJobs)
		cmd.Printf("%s %d\n", labelStyle.Render("Active:"), stats.ActiveJobs)
		cmd.Printf("%s %d\n", labelStyle.Render("Applications received:"), stats.Applications)
		cmd.Printf("%s %d\n", labelStyle.Render("Awaiting review:"), stats.Pending)
		return nil
	},
}

func activeOnly(list []models.JobPosting) []models.JobPosting {
	out := make([]models.JobPosting, 0, len(list))
	for _, j := range list {
		if j.Active() {
			out = append(out, j)
		}
	}
	return out
}

func printJobs(cmd *cobra.Command, list []models.JobPosting) {
	for _, job := range list {
		title := job.Title
		if job.Highlight {
			title = highlightStyle.Render("★ ") + title
		}
		cmd.Printf("\n%s %s\n", labelStyle.Render("["+job.ID+"]"), title)
		field(cmd, "   ", "Company", job.Company)
		field(cmd, "   ", "Location", job.Location)
		cmd.Printf("   %s %s · %s\n", labelStyle.Render("Contract:"), job.Type, job.Mode)
		field(cmd, "   ", "Salary", job.Salary)
		if len(job.Tags) > 0 {
			cmd.Printf("   %s\n", mutedStyle.Render(strings.Join(job.Tags, " · ")))
		}
		if !job.Active() {
			cmd.Printf("   %s\n", mutedStyle.Render("(paused)"))
		}
	}
}

// jobFlags maps job form fields to their flag names
var jobFlags = []struct {
	name, usage string
	target      func(f *forms.JobForm) *string
}{
	{"company", "Company name (defaults to your account name)", func(f *forms.JobForm) *string { return &f.Company }},
	{"site", "Company website", func(f *forms.JobForm) *string { return &f.Site }},
	{"email", "Contact email (defaults to your account email)", func(f *forms.JobForm) *string { return &f.Email }},
	{"phone", "Contact phone", func(f *forms.JobForm) *string { return &f.Phone }},
	{"title", "Job title", func(f *forms.JobForm) *string { return &f.Title }},
	{"location", "City and state", func(f *forms.JobForm) *string { return &f.Location }},
	{"type", "Contract: CLT, PJ, Estágio, Temporário or Freelancer", func(f *forms.JobForm) *string { return &f.Type }},
	{"mode", "Work mode: Presencial, Híbrido or Remoto", func(f *forms.JobForm) *string { return &f.Mode }},
	{"seniority", "Seniority level", func(f *forms.JobForm) *string { return &f.Seniority }},
	{"salary", "Salary range", func(f *forms.JobForm) *string { return &f.Salary }},
	{"summary", "Short summary", func(f *forms.JobForm) *string { return &f.Summary }},
	{"description", "Full description", func(f *forms.JobForm) *string { return &f.Description }},
	{"responsibilities", "Responsibilities", func(f *forms.JobForm) *string { return &f.Responsibilities }},
	{"requirements", "Requirements", func(f *forms.JobForm) *string { return &f.Requirements }},
	{"benefits", "Benefits", func(f *forms.JobForm) *string { return &f.Benefits }},
	{"deadline", "Application deadline (YYYY-MM-DD)", func(f *forms.JobForm) *string { return &f.Deadline }},
	{"apply-url", "External application URL", func(f *forms.JobForm) *string { return &f.ApplyURL }},
	{"tags", "Comma separated tags", func(f *forms.JobForm) *string { return &f.Tags }},
}

var jobBoolFlags = []struct {
	name, usage string
	target      func(f *forms.JobForm) *bool
}{
	{"highlight", "Highlight the posting", func(f *forms.JobForm) *bool { return &f.Highlight }},
	{"accept-remote", "Accept remote candidates", func(f *forms.JobForm) *bool { return &f.AcceptRemote }},
	{"receive-email", "Receive applications by email", func(f *forms.JobForm) *bool { return &f.ReceiveEmail }},
	{"accept-terms", "Accept the publication terms", func(f *forms.JobForm) *bool { return &f.AcceptTerms }},
}

func addJobFlags(fs *pflag.FlagSet) {
	for _, f := range jobFlags {
		fs.String(f.name, "", f.usage)
	}
	for _, f := range jobBoolFlags {
		fs.Bool(f.name, false, f.usage)
	}
}

// readJobFlags copies the flags that were set onto form
func readJobFlags(fs *pflag.FlagSet, form *forms.JobForm) {
	for _, f := range jobFlags {
		if fs.Changed(f.name) {
			*f.target(form), _ = fs.GetString(f.name)
		}
	}
	for _, f := range jobBoolFlags {
		if fs.Changed(f.name) {
			*f.target(form), _ = fs.GetBool(f.name)
		}
	}
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(listJobsCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(createJobCmd)
	jobCmd.AddCommand(editJobCmd)
	jobCmd.AddCommand(jobStatusCmd("pause", "Stop receiving applications for a posting", "paused", models.JobPaused))
	jobCmd.AddCommand(jobStatusCmd("resume", "Reopen a paused posting", "is active again", models.JobActive))
	jobCmd.AddCommand(deleteJobCmd)
	jobCmd.AddCommand(mineJobsCmd)
	jobCmd.AddCommand(statsJobsCmd)

	listJobsCmd.Flags().StringP("query", "q", "", "Search title, company and tags")
	listJobsCmd.Flags().String("location", "", "Filter by location")
	listJobsCmd.Flags().String("type", "", "Filter by contract type")
	listJobsCmd.Flags().String("mode", "", "Filter by work mode")
	listJobsCmd.Flags().Bool("all", false, "Include paused postings")

	addJobFlags(createJobCmd.Flags())
	addJobFlags(editJobCmd.Flags())
}
