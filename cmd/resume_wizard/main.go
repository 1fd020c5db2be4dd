// Package main provides the entry point for the resume wizard server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_wizard",
	Short: "Resume intake wizard HTTP API server",
	Long:  "Resume Wizard turns uploaded resume documents, or a blank slate, into normalized structured resume records through a guided nine-step editor, optionally bootstrapped by AI document parsing.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
