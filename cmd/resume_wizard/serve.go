package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the wizard HTTP API server",
	Long: `Starts the HTTP API serving the upload, wizard step, and commit endpoints.

Configuration comes from the environment (optionally via a .env file):
DATABASE_URL, PORT, AI_PROVIDER, AI_PARSING_ENABLED, GEMINI_API_KEY / OPENAI_API_KEY, MAX_UPLOAD_BYTES.`,
	RunE: runServe,
}

var servePort int

func init() {
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides PORT env var)")
	rootCmd.AddCommand(serveCommand)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
