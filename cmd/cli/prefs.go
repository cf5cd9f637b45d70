package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tophbot/toph/internal/prefs"
)

var prefsJSON bool

// Color definitions
var (
	titleColor = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

var prefsCmd = &cobra.Command{
	Use:   "prefs-parse [file]",
	Short: "Dry-run the preference extractor on a file or stdin",
	Long: `Parse preference text the way the bot parses a setup comment and print
the resulting preferences. Input may be YAML, JSON, structured Markdown, or
free text.

Examples:
  toph-cli prefs-parse my-prefs.yaml
  cat comment.md | toph-cli prefs-parse
  toph-cli prefs-parse --json my-prefs.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrefsParse,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	prefsCmd.Flags().BoolVar(&prefsJSON, "json", false, "Output parsed preferences as JSON")
	rootCmd.AddCommand(prefsCmd)
}

func runPrefsParse(_ *cobra.Command, args []string) error {
	var content []byte
	var err error
	if len(args) == 1 {
		content, err = os.ReadFile(args[0])
	} else {
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor := prefs.NewExtractor(logger)
	parsed := extractor.Parse(string(content))

	if prefsJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(parsed)
	}

	titleColor.Println("Parsed preferences")
	dimColor.Printf("   Input: %d bytes\n\n", len(content))
	fmt.Println(prefs.FormatForStorage(parsed, "local", "dry-run"))
	return nil
}
