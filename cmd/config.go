package cmd

import (
	"fmt"
	"strconv"

	"github.com/ecodeclub/ekit/slice"
	"github.com/sonar-libras/sonar/internal/app"
	"github.com/sonar-libras/sonar/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
	// config commands only load the config file, so a value the app cannot
	// start with can still be changed here
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Initialize()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.AppConfig
		cmd.Println(titleStyle.Render("Configuration"))
		field(cmd, "", "Config File", config.GetConfigPath())
		field(cmd, "", "Database", cfg.DBPath())
		field(cmd, "", "Log Level", cfg.LogLevel)
		field(cmd, "", "Log Format", cfg.LogFormat)
		field(cmd, "", "Node ID", strconv.FormatInt(cfg.NodeID, 10))
		if cfg.SeedJobs {
			field(cmd, "", "Seed Jobs", "✓ Enabled")
		} else {
			field(cmd, "", "Seed Jobs", "✗ Disabled")
		}
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  sonar config set --key log_level --value debug
  sonar config set --key seed_jobs --value false
  sonar config set --key data_dir --value /var/lib/sonar`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("%w: both --key and --value are required", app.ErrInvalidArgument)
		}
		if !slice.Contains(config.Keys, key) {
			return fmt.Errorf("%w: key must be one of %v", app.ErrInvalidArgument, config.Keys)
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("%w: %w", app.ErrInvalidArgument, err)
		}

		cmd.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
