package commands

import (
	"fmt"

	"github.com/quillworks/quill/internal/config"
	"github.com/quillworks/quill/internal/repository"
	"github.com/quillworks/quill/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the blog HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer log.Sync()

			db, err := repository.New(cfg)
			if err != nil {
				return err
			}

			engine := server.New(cfg, log, db)

			log.Info("Server started", zap.String("address", cfg.Server.Addr()))
			return engine.Run(cfg.Server.Addr())
		},
	}
}
