// Package main provides the entry point for the HireCipher resume intake
// service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hirecipher",
	Short: "AI-powered resume intake",
	Long:  "HireCipher parses uploaded resumes into structured candidate records via the Gemini API and keeps a searchable per-user roster in a local store.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
