package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tophbot/toph/internal/github"
	"github.com/tophbot/toph/internal/llm"
)

var (
	promptBudget   int
	promptMaxFiles int
)

var promptCmd = &cobra.Command{
	Use:   "prompt [pr-url]",
	Short: "Print the assembled review prompt for a GitHub Pull Request",
	Long: `Fetch a pull request's changed files and print the exact review prompt
the bot would send to the model, including the diff budget behavior.

Examples:
  toph-cli prompt https://github.com/owner/repo/pull/123
  toph-cli prompt --budget 5000 https://github.com/owner/repo/pull/123`,
	Args: cobra.ExactArgs(1),
	RunE: runPrompt,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	promptCmd.Flags().IntVar(&promptBudget, "budget", llm.DefaultReviewPatchBudget, "Diff section character budget")
	promptCmd.Flags().IntVar(&promptMaxFiles, "max-files", github.DefaultMaxChangedFiles, "Maximum changed files to include")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	token := viper.GetString("GITHUB_TOKEN")
	if token == "" {
		return fmt.Errorf("a GitHub token is required, pass --github-token or set TOPH_GITHUB_TOKEN")
	}

	owner, repo, number, err := parsePullRequestURL(args[0])
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := github.NewPATClient(ctx, token, logger)

	pr, err := client.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return fmt.Errorf("failed to fetch PR: %w", err)
	}
	files, err := client.ListChangedFiles(ctx, owner, repo, number, promptMaxFiles)
	if err != nil {
		return fmt.Errorf("failed to fetch changed files: %w", err)
	}

	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}
	builder := llm.NewBuilder(promptMgr)

	meta := llm.PromptMeta{
		RepoFullName: owner + "/" + repo,
		PRTitle:      pr.GetTitle(),
		PRAuthor:     pr.GetUser().GetLogin(),
		HeadRef:      pr.GetHead().GetRef(),
		BaseRef:      pr.GetBase().GetRef(),
	}
	prompt, err := builder.ReviewPrompt(meta, files, promptBudget)
	if err != nil {
		return fmt.Errorf("failed to build prompt: %w", err)
	}

	dimColor.Fprintf(os.Stderr, "files: %d, prompt: %d chars\n", len(files), len(prompt))
	fmt.Println(prompt)
	return nil
}

// parsePullRequestURL extracts owner, repo and PR number from a URL like
// https://github.com/owner/repo/pull/123.
func parsePullRequestURL(raw string) (string, string, int, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid PR URL %q: %w", raw, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 4 || parts[2] != "pull" {
		return "", "", 0, fmt.Errorf("invalid PR URL %q, expected https://github.com/owner/repo/pull/123", raw)
	}
	number, err := strconv.Atoi(parts[3])
	if err != nil || number <= 0 {
		return "", "", 0, fmt.Errorf("invalid PR number in URL %q", raw)
	}
	return parts[0], parts[1], number, nil
}
