package cmd

import (
	"errors"
	"fmt"

	"github.com/sonar-libras/sonar/internal/forms"
	"github.com/sonar-libras/sonar/internal/identity"
	"github.com/sonar-libras/sonar/pkg/models"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Example: `  sonar register --name "Ana Souza" --email ana@example.com --password senha123 --confirm senha123 --type candidato
  sonar register --name "TechCo" --email rh@techco.com --password senha123 --confirm senha123 --type empresa`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}

		form := forms.RegisterForm{}
		form.Name, _ = cmd.Flags().GetString("name")
		form.Email, _ = cmd.Flags().GetString("email")
		form.Password, _ = cmd.Flags().GetString("password")
		form.ConfirmPassword, _ = cmd.Flags().GetString("confirm")
		form.Category, _ = cmd.Flags().GetString("type")

		if err := application.Validator.Validate(form); err != nil {
			return err
		}

		s, err := application.Identity.Register(cmd.Context(), form.Name, form.Email, form.Password, models.Category(form.Category))
		if errors.Is(err, identity.ErrDuplicateEmail) {
			return fmt.Errorf("this email is already registered")
		}
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}

		cmd.Printf("✓ Welcome, %s! You are logged in as %s.\n", s.Name, titleCase(string(s.Category)))
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		s, err := application.Identity.Login(cmd.Context(), email, password)
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return fmt.Errorf("invalid email or password")
		}
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if err := application.UpgradeSessionData(cmd.Context()); err != nil {
			return err
		}

		cmd.Printf("✓ Logged in as %s\n", s.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := application.Identity.Logout(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("✓ Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}

		s, ok := application.Identity.Current()
		if !ok {
			cmd.Println("Not logged in. Use 'sonar login' or 'sonar register'.")
			return nil
		}

		cmd.Println(titleStyle.Render("Your Account"))
		field(cmd, "", "Name", s.Name)
		field(cmd, "", "Email", s.Email)
		field(cmd, "", "Type", titleCase(string(s.Category)))
		field(cmd, "", "ID", s.ID)
		field(cmd, "", "Member since", s.CreatedAt.Format("02/01/2006"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	registerCmd.Flags().String("name", "", "Display name")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("password", "", "Password (at least 6 characters)")
	registerCmd.Flags().String("confirm", "", "Password confirmation")
	registerCmd.Flags().String("type", string(models.CategoryCandidate), "Account type: candidato, empresa or aluno")

	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("password", "", "Password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
