// Package main provides the entry point for the Vendor Profiler CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vendor_agent",
	Short: "Vendor Profiler HTTP API Server",
	Long:  "Vendor Profiler turns a vendor's public website into a structured profile of its company, products, integrations, contacts, and compliance posture.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
