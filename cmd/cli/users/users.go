package users

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crucial707/dayplan/cmd/cli/client"
	"github.com/crucial707/dayplan/cmd/cli/config"
	"github.com/crucial707/dayplan/cmd/cli/output"
	"github.com/crucial707/dayplan/cmd/cli/root"
	"github.com/crucial707/dayplan/internal/models"
)

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users and authentication",
		Long: `Register or login a user to the dayplan API.
Stores the JWT token in ~/.dayplan/config.toml for future commands.`,
	}

	usersCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd(), meCmd())
	rootCmd.AddCommand(usersCmd)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// prompt fills missing credentials from in.
func prompt(cmd *cobra.Command, in io.Reader, c *credentials) {
	if c.Username == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Username: ")
		fmt.Fscanln(in, &c.Username)
	}
	if c.Password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		fmt.Fscanln(in, &c.Password)
	}
}

func credentialFlags(cmd *cobra.Command, c *credentials) {
	cmd.Flags().StringVar(&c.Username, "username", "", "Username (prompted when empty)")
	cmd.Flags().StringVar(&c.Password, "password", "", "Password (prompted when empty)")
}

// ==========================
// Register User
// ==========================
func registerCmd() *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long:  "Register a new user with username and password.",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt(cmd, cmd.InOrStdin(), &creds)
			var user models.User
			if err := client.New().Post("/auth/register", creds, &user); err != nil {
				return fmt.Errorf("register: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s registered (id %d). You can now login.\n", user.Username, user.ID)
			return nil
		},
	}
	credentialFlags(cmd, &creds)
	return cmd
}

// ==========================
// Login User
// ==========================
func loginCmd() *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login an existing user",
		Long:  "Login and save the JWT token locally for future CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt(cmd, cmd.InOrStdin(), &creds)
			var result struct {
				Token string `json:"token"`
			}
			if err := client.New().Post("/auth/login", creds, &result); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if result.Token == "" {
				return fmt.Errorf("token not returned by API")
			}
			if err := config.SaveToken(result.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Login successful! JWT token saved to", config.Path())
			return nil
		},
	}
	credentialFlags(cmd, &creds)
	return cmd
}

// ==========================
// Logout User
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout current user",
		Long:  "Remove the locally saved JWT token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			had, err := config.ClearToken()
			if err != nil {
				return err
			}
			if !had {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}

// ==========================
// Current User
// ==========================
func meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authed()
			if err != nil {
				return err
			}
			var user models.User
			if err := c.Get("/me", &user); err != nil {
				return err
			}
			if root.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), user)
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Username", "Created"},
				[][]interface{}{{user.ID, user.Username, user.CreatedAt.Format("2006-01-02")}})
			return nil
		},
	}
}
