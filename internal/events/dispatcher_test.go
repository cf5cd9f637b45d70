package events

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tophbot/toph/internal/core"
)

// recordingJob counts runs and captures the last event it received.
type recordingJob struct {
	runs int
	last *core.GitHubEvent
	err  error
}

func (j *recordingJob) Run(_ context.Context, event *core.GitHubEvent) error {
	j.runs++
	j.last = event
	return j.err
}

func testDispatcher() (*Dispatcher, *recordingJob, *recordingJob) {
	review := &recordingJob{}
	comment := &recordingJob{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDispatcher(review, comment, logger), review, comment
}

func pullRequestPayload(action string) []byte {
	return []byte(fmt.Sprintf(`{
		"action": %q,
		"pull_request": {
			"number": 42,
			"title": "Add frobnicator",
			"user": {"login": "alice"},
			"head": {"ref": "feature/frob"},
			"base": {"ref": "main"}
		},
		"repository": {
			"name": "widgets",
			"full_name": "acme/widgets",
			"owner": {"login": "acme"}
		},
		"installation": {"id": 99}
	}`, action))
}

func issueCommentPayload(action, userType, body string) []byte {
	return []byte(fmt.Sprintf(`{
		"action": %q,
		"issue": {
			"number": 42,
			"title": "Add frobnicator",
			"user": {"login": "alice"},
			"pull_request": {"url": "https://api.github.com/repos/acme/widgets/pulls/42"}
		},
		"comment": {
			"body": %q,
			"user": {"login": "bob", "type": %q}
		},
		"repository": {
			"name": "widgets",
			"full_name": "acme/widgets",
			"owner": {"login": "acme"}
		},
		"installation": {"id": 99}
	}`, action, body, userType))
}

func TestParseEventType(t *testing.T) {
	assert.Equal(t, EventPullRequest, ParseEventType("pull_request"))
	assert.Equal(t, EventIssueComment, ParseEventType("issue_comment"))
	assert.Equal(t, EventPush, ParseEventType("push"))
	assert.Equal(t, EventInstallation, ParseEventType("installation"))
	assert.Equal(t, EventPing, ParseEventType("ping"))
	assert.Equal(t, EventUnknown, ParseEventType("workflow_run"))
	assert.Equal(t, EventUnknown, ParseEventType(""))
}

func TestDispatch_PullRequestReviewActions(t *testing.T) {
	for _, action := range []string{"opened", "synchronize", "reopened"} {
		t.Run(action, func(t *testing.T) {
			d, review, comment := testDispatcher()

			err := d.Dispatch(context.Background(), EventPullRequest, pullRequestPayload(action))
			require.NoError(t, err)

			assert.Equal(t, 1, review.runs)
			assert.Equal(t, 0, comment.runs)
			assert.Equal(t, "acme/widgets", review.last.RepoFullName)
			assert.Equal(t, 42, review.last.PRNumber)
			assert.Equal(t, int64(99), review.last.InstallationID)
		})
	}
}

func TestDispatch_PullRequestIgnoredActions(t *testing.T) {
	for _, action := range []string{"labeled", "closed", "edited", "assigned"} {
		t.Run(action, func(t *testing.T) {
			d, review, comment := testDispatcher()

			err := d.Dispatch(context.Background(), EventPullRequest, pullRequestPayload(action))
			require.NoError(t, err)

			assert.Equal(t, 0, review.runs)
			assert.Equal(t, 0, comment.runs)
		})
	}
}

func TestDispatch_IssueCommentCreated(t *testing.T) {
	d, review, comment := testDispatcher()

	err := d.Dispatch(context.Background(), EventIssueComment,
		issueCommentPayload("created", "User", "@toph-bot what does this do?"))
	require.NoError(t, err)

	assert.Equal(t, 0, review.runs)
	assert.Equal(t, 1, comment.runs)
	assert.Equal(t, "bob", comment.last.Commenter)
	assert.Equal(t, "@toph-bot what does this do?", comment.last.CommentBody)
}

func TestDispatch_IssueCommentBotAuthorIgnored(t *testing.T) {
	d, _, comment := testDispatcher()

	err := d.Dispatch(context.Background(), EventIssueComment,
		issueCommentPayload("created", "Bot", "an automated reply"))
	require.NoError(t, err)

	assert.Equal(t, 0, comment.runs)
}

func TestDispatch_IssueCommentEditedIgnored(t *testing.T) {
	d, _, comment := testDispatcher()

	err := d.Dispatch(context.Background(), EventIssueComment,
		issueCommentPayload("edited", "User", "@toph-bot hello"))
	require.NoError(t, err)

	assert.Equal(t, 0, comment.runs)
}

func TestDispatch_SideEffectFreeEvents(t *testing.T) {
	tests := []struct {
		name      string
		eventType EventType
		payload   []byte
	}{
		{"ping", EventPing, []byte(`{"zen": "Keep it logically awesome."}`)},
		{"push", EventPush, []byte(`{"ref": "refs/heads/main", "repository": {"full_name": "acme/widgets"}}`)},
		{"installation created", EventInstallation, []byte(`{"action": "created", "installation": {"id": 99, "account": {"login": "acme"}}}`)},
		{"installation deleted", EventInstallation, []byte(`{"action": "deleted", "installation": {"id": 99, "account": {"login": "acme"}}}`)},
		{"installation suspend", EventInstallation, []byte(`{"action": "suspend", "installation": {"id": 99, "account": {"login": "acme"}}}`)},
		{"installation unsuspend", EventInstallation, []byte(`{"action": "unsuspend", "installation": {"id": 99, "account": {"login": "acme"}}}`)},
		{"unknown", EventUnknown, []byte(`{"anything": true}`)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, review, comment := testDispatcher()

			err := d.Dispatch(context.Background(), tc.eventType, tc.payload)
			require.NoError(t, err)

			assert.Equal(t, 0, review.runs)
			assert.Equal(t, 0, comment.runs)
		})
	}
}

func TestDispatch_MalformedTypedPayload(t *testing.T) {
	d, review, _ := testDispatcher()

	err := d.Dispatch(context.Background(), EventPullRequest, []byte(`{"action": 12}`))
	assert.Error(t, err)
	assert.Equal(t, 0, review.runs)
}

func TestDispatch_JobErrorPropagates(t *testing.T) {
	d, review, _ := testDispatcher()
	review.err = fmt.Errorf("api unavailable")

	err := d.Dispatch(context.Background(), EventPullRequest, pullRequestPayload("opened"))
	assert.ErrorContains(t, err, "api unavailable")
}
