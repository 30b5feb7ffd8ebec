// Package main provides the entry point for the Wadhifa job board API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wadhifa",
	Short: "Wadhifa Job Board API Server",
	Long:  "Wadhifa serves the job board and employer review platform: filtered job search with profile match scoring, application and review submission, and draft persistence via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
