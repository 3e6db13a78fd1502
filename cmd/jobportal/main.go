// Package main provides the jobportal command: the API server and a
// terminal client for it.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/config"
	"github.com/jonathan/job-portal/internal/logging"
	"github.com/jonathan/job-portal/internal/portal"
)

var (
	configPath string
	apiURL     string
	apiToken   string
)

var rootCmd = &cobra.Command{
	Use:   "jobportal",
	Short: "Job portal API server and client",
	Long: `Job portal serves the jobs, resumes and applications API together with the
prediction endpoint, and provides a terminal client for browsing ranked jobs,
filling in a resume with word completions and applying to postings.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Portal API base URL (overrides API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Bearer token (defaults to PORTAL_TOKEN env var)")
}

// env is the configuration and logger shared by every command.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &env{cfg: cfg, logger: logger}, nil
}

// client builds an API client, sending the configured token if any.
func (e *env) client() *portal.Client {
	opts := []portal.Option{portal.WithPredictURL(e.cfg.PredictEndpoint())}
	token := apiToken
	if token == "" {
		token = os.Getenv("PORTAL_TOKEN")
	}
	if token != "" {
		opts = append(opts, portal.WithToken(token))
	}
	return portal.NewClient(e.cfg.APIURL, opts...)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
