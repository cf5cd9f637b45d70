// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"log/slog"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/tophbot/toph/internal/core"
)

// DefaultMaxChangedFiles caps how many changed files are fetched for one pull
// request.
const DefaultMaxChangedFiles = 15

// Client defines the set of GitHub API operations the bot needs: pull request
// details, changed files, and comment posting.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	ListChangedFiles(ctx context.Context, owner, repo string, number, maxFiles int) ([]core.ChangedFile, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a GitHub client authenticated with a Personal Access
// Token. This is useful for CLI tools or local development where an App
// installation is not available.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return &gitHubClient{client: github.NewClient(tc), logger: logger}
}

// GetPullRequest retrieves a single pull request by its number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, err
	}
	return pr, nil
}

// ListChangedFiles retrieves the files modified in a pull request, in API
// order, up to maxFiles. It pages through the API as needed; GitHub returns
// at most 100 files per page.
func (g *gitHubClient) ListChangedFiles(ctx context.Context, owner, repo string, number, maxFiles int) ([]core.ChangedFile, error) {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxChangedFiles
	}

	var files []core.ChangedFile
	opts := &github.ListOptions{PerPage: 100}

	for {
		page, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list files for pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, err
		}

		for _, file := range page {
			files = append(files, core.ChangedFile{
				Filename: file.GetFilename(),
				Status:   file.GetStatus(),
				Patch:    file.GetPatch(),
			})
			if len(files) >= maxFiles {
				return files, nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// CreateComment creates a new comment on a pull request.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: &body}
	_, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
	}
	return err
}
