package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-portal/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the auth, jobs, resumes, applications and prediction endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	if e.cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	port := e.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:              port,
		DatabaseURL:       e.cfg.DatabaseURL,
		RedisURL:          e.cfg.RedisURL,
		DictionaryRefresh: e.cfg.DictionaryRefresh,
		PredictCacheTTL:   e.cfg.PredictCacheTTL,
		Logger:            e.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
