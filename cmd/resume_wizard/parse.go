package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/extraction"
	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/normalize"
	"github.com/jonathan/resume-wizard/internal/parsing"
)

var parseCommand = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract and parse a resume document to canonical JSON",
	Long: `Runs the intake pipeline offline: extracts text and links from the
document, parses them into a structured resume (AI when configured, the
deterministic fallback otherwise), normalizes the result, and prints the
canonical draft as JSON on stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var parseRaw bool

func init() {
	parseCommand.Flags().BoolVar(&parseRaw, "raw", false, "Print extracted text and links instead of the parsed draft")
	rootCmd.AddCommand(parseCommand)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	raw, err := extraction.Extract(data, path)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if parseRaw {
		return printJSON(raw)
	}

	cfg := config.FromEnv()
	var client llm.Client
	if cfg.AIParsingEnabled && cfg.APIKey() != "" {
		client, err = llm.NewClient(cmd.Context(), llm.Provider(cfg.AIProvider), cfg.APIKey(), cfg.AIModel)
		if err != nil {
			log.Printf("AI client unavailable, using fallback parser: %v", err)
			client = nil
		}
	}
	if client != nil {
		defer func() {
			if err := client.Close(); err != nil {
				log.Printf("Error closing AI client: %v", err)
			}
		}()
	}

	structured := parsing.NewParser(client).Parse(context.Background(), raw.Text, raw.Links)
	return printJSON(normalize.Draft(structured))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
