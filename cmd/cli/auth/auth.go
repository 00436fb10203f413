package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/crucial707/recipe-api/cmd/cli/client"
	"github.com/crucial707/recipe-api/cmd/cli/config"
	"github.com/crucial707/recipe-api/cmd/cli/output"
	"github.com/crucial707/recipe-api/internal/dto"
	"github.com/spf13/cobra"
)

// InitAuth registers the auth command group on the root command.
func InitAuth(rootCmd *cobra.Command) {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, log out and show the current user",
	}
	authCmd.AddCommand(loginCmd(), registerCmd(), logoutCmd(), profileCmd())
	rootCmd.AddCommand(authCmd)
}

// ==========================
// Login
// ==========================
func loginCmd() *cobra.Command {
	var email, password string
	var register bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Recipe API",
		Long:  "Authenticate with the Recipe API and store a JWT token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			// Optionally register the user first
			if register {
				payload := map[string]string{"email": email, "password": password}
				if err := client.Call(http.MethodPost, "/auth/register", payload, nil, false); err != nil {
					return fmt.Errorf("failed to register user: %w", err)
				}
			}

			var out dto.TokenUserDto
			payload := map[string]string{"email": email, "password": password}
			if err := client.Call(http.MethodPost, "/auth/login", payload, &out, false); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if out.Token == "" {
				return errors.New("login succeeded but no token returned")
			}
			if err := config.SaveToken(out.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Token stored locally.\n", out.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().BoolVar(&register, "register", false, "Register the user before logging in")
	return cmd
}

// ==========================
// Register
// ==========================
func registerCmd() *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"email":      email,
				"password":   password,
				"first_name": firstName,
				"last_name":  lastName,
			}
			var user dto.FetchUserDto
			if err := client.Call(http.MethodPost, "/auth/register", payload, &user, false); err != nil {
				return fmt.Errorf("failed to register user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %s). You can now log in.\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (min 8 characters)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	return cmd
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			existed, err := config.ClearToken()
			if err != nil {
				return err
			}
			if !existed {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}

// ==========================
// Profile
// ==========================
func profileCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var user dto.FetchUserDto
			if err := client.Call(http.MethodGet, "/auth/profile", nil, &user, true); err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), user)
			}
			output.RenderTable(cmd.OutOrStdout(),
				[]string{"ID", "Email", "First name", "Last name"},
				[][]any{{user.ID, user.Email, user.FirstName, user.LastName}})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")
	return cmd
}
