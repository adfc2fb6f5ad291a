package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/config"
)

// rootCommand builds the CLI. Running it without a subcommand serves the API.
func rootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "fakenews",
		Short:         "Fake news detection API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to a config file (default: search ./config.yaml, ./config/config.yaml, /etc/fakenews/config.yaml)")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return migrate(cfg)
		},
	}

	rootCmd.RunE = serveCmd.RunE
	rootCmd.AddCommand(serveCmd, migrateCmd)
	return rootCmd
}
