package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sonar-libras/sonar/internal/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sonar",
	Short: "Inclusive jobs and Libras courses from the command line",
	Long: `Sonar connects deaf and hard of hearing professionals with inclusive companies.
Candidates browse and apply to job postings, companies publish and review them,
and students follow Libras courses module by module.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		cmd.SetContext(app.WithApp(cmd.Context(), application))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if a, err := app.FromContext(cmd.Context()); err == nil {
			return a.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
