// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"fmt"

	"github.com/google/go-github/v73/github"
)

// GitHubEvent represents a simplified, internal view of a GitHub webhook event.
type GitHubEvent struct {
	// Repository details
	RepoOwner    string
	RepoName     string
	RepoFullName string

	Action   string
	PRNumber int
	PRTitle  string
	PRBody   string
	PRAuthor string
	HeadRef  string
	BaseRef  string

	// Commenter and CommentBody are only set for issue_comment events.
	Commenter   string
	CommentBody string

	InstallationID int64
}

// EventFromPullRequest transforms a raw GitHub PullRequestEvent into the
// application's internal GitHubEvent representation. It acts as an
// anti-corruption layer, ensuring the incoming webhook payload is valid and
// contains all necessary data before the review pipeline processes it.
func EventFromPullRequest(event *github.PullRequestEvent) (*GitHubEvent, error) {
	repo := event.GetRepo()
	if repo == nil || repo.GetOwner() == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("repository or owner information is missing from the event")
	}

	pr := event.GetPullRequest()
	if pr == nil {
		return nil, fmt.Errorf("pull request information is missing from the event")
	}
	if pr.GetNumber() <= 0 {
		return nil, fmt.Errorf("invalid pull request number: %d", pr.GetNumber())
	}

	if event.GetInstallation() == nil || event.GetInstallation().GetID() == 0 {
		return nil, fmt.Errorf("installation ID is missing from the event")
	}

	return &GitHubEvent{
		RepoOwner:      repo.GetOwner().GetLogin(),
		RepoName:       repo.GetName(),
		RepoFullName:   repo.GetFullName(),
		Action:         event.GetAction(),
		PRNumber:       pr.GetNumber(),
		PRTitle:        pr.GetTitle(),
		PRBody:         pr.GetBody(),
		PRAuthor:       pr.GetUser().GetLogin(),
		HeadRef:        pr.GetHead().GetRef(),
		BaseRef:        pr.GetBase().GetRef(),
		InstallationID: event.GetInstallation().GetID(),
	}, nil
}

// EventFromIssueComment transforms a raw GitHub IssueCommentEvent into the
// application's internal GitHubEvent representation. It filters out comments
// that are not on pull requests and comments authored by bots, so the bot
// never reacts to its own replies.
func EventFromIssueComment(event *github.IssueCommentEvent) (*GitHubEvent, error) {
	if !event.GetIssue().IsPullRequest() {
		return nil, fmt.Errorf("comment is not on a pull request")
	}

	comment := event.GetComment()
	if comment.GetUser() == nil || comment.GetUser().GetLogin() == "" {
		return nil, fmt.Errorf("commenter information is missing from the event")
	}
	if comment.GetUser().GetType() == "Bot" {
		return nil, fmt.Errorf("comment was authored by a bot")
	}
	if comment.GetBody() == "" {
		return nil, fmt.Errorf("comment body is empty")
	}

	repo := event.GetRepo()
	if repo == nil || repo.GetOwner() == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("repository or owner information is missing from the event")
	}

	prNumber := event.GetIssue().GetNumber()
	if prNumber <= 0 {
		return nil, fmt.Errorf("invalid pull request number: %d", prNumber)
	}

	if event.GetInstallation() == nil || event.GetInstallation().GetID() == 0 {
		return nil, fmt.Errorf("installation ID is missing from the event")
	}

	return &GitHubEvent{
		RepoOwner:      repo.GetOwner().GetLogin(),
		RepoName:       repo.GetName(),
		RepoFullName:   repo.GetFullName(),
		Action:         event.GetAction(),
		PRNumber:       prNumber,
		PRTitle:        event.GetIssue().GetTitle(),
		PRBody:         event.GetIssue().GetBody(),
		PRAuthor:       event.GetIssue().GetUser().GetLogin(),
		Commenter:      comment.GetUser().GetLogin(),
		CommentBody:    comment.GetBody(),
		InstallationID: event.GetInstallation().GetID(),
	}, nil
}
