package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrei/cv-tailor/internal/config"
	"github.com/andrei/cv-tailor/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveDBURL      string
	serveAPIKey     string
	serveModel      string
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the profile editor, generation and history endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Gemini model name")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig(serveConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDBURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = serveModel
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}

	cfg.FromEnv()
	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return err
	}
	if merged.APIKey == "" {
		return fmt.Errorf("Gemini API key is required (flag --api-key or GEMINI_API_KEY)")
	}

	srv, err := server.New(context.Background(), merged)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// loadCLIConfig reads an optional config file; an empty path yields a zero
// config for flags and environment to fill in.
func loadCLIConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}

	loaded, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return config.Config{}, err
	}
	return *loaded, nil
}
