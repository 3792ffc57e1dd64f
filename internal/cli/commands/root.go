// Package commands contains the quill CLI: serving the blog, migrating the
// schema, and managing author accounts.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with all subcommands
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quill",
		Short:         "Personal blog server",
		Long:          "Quill serves a personal blog: tagged entries, comments, and a generated admin console.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewUserCmd())

	return cmd
}
