package commands

import (
	"fmt"
	"os"

	"github.com/quillworks/quill/internal/auth"
	"github.com/quillworks/quill/internal/config"
	"github.com/quillworks/quill/internal/repository"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewUserCmd creates the user command with all subcommands
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Author account management commands",
	}

	cmd.AddCommand(newUserCreateCmd())

	return cmd
}

// user create
func newUserCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an author account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			admin, _ := cmd.Flags().GetBool("admin")

			password, err := readPassword()
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := repository.New(cfg)
			if err != nil {
				return err
			}

			user, err := auth.NewService(db, cfg).CreateUser(cmd.Context(), email, name, password, admin)
			if err != nil {
				return err
			}

			fmt.Printf("Created user %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().String("email", "", "email address (required)")
	cmd.Flags().String("name", "", "display name (required)")
	cmd.Flags().Bool("admin", false, "grant admin console access")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")

	return cmd
}

func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(password), nil
}
