// Package main provides the entry point for the CV tailoring assistant.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvtailor",
	Short: "LLM-powered resume and cover letter tailoring",
	Long:  "cvtailor keeps a structured candidate profile and generates a resume and cover letter tailored to a specific job posting, as an HTTP API or a one-shot CLI run.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
