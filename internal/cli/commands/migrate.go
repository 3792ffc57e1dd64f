package commands

import (
	"fmt"

	"github.com/quillworks/quill/internal/config"
	"github.com/quillworks/quill/internal/repository"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// New migrates on connect.
			if _, err := repository.New(cfg); err != nil {
				return err
			}

			fmt.Println("Database schema is up to date")
			return nil
		},
	}
}
