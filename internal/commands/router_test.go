package commands

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tophbot/toph/internal/core"
	"github.com/tophbot/toph/internal/prefs"
	"github.com/tophbot/toph/mocks"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Command
	}{
		{"init marker", "@toph-bot/init", CommandInit},
		{"configure marker", "@toph-bot/configure with content", CommandConfigure},
		{"plain mention", "hey @toph-bot what does this change do?", CommandInteract},
		{"case-insensitive", "@TOPH-BOT/INIT", CommandInit},
		{"init beats mention", "@toph-bot please run @toph-bot/init for me", CommandInit},
		{"init beats configure", "@toph-bot/configure then @toph-bot/init", CommandInit},
		{"no marker", "looks good to me", CommandNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(tc.body))
		})
	}
}

func TestStripMention(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain mention", "@toph-bot what does this do?", "what does this do?"},
		{"command marker", "@toph-bot/init", ""},
		{"mention mid-sentence", "hey @toph-bot is this safe?", "hey  is this safe?"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripMention(tc.body))
		})
	}
}

func testRouter(t *testing.T) (*Router, *mocks.MockBlockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockBlockStore(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := prefs.NewManager(store, prefs.NewExtractor(logger), logger)
	return NewRouter(manager, logger), store
}

func testEvent(body string) *core.GitHubEvent {
	return &core.GitHubEvent{
		RepoOwner:    "acme",
		RepoName:     "widgets",
		RepoFullName: "acme/widgets",
		PRNumber:     7,
		Commenter:    "alice",
		CommentBody:  body,
	}
}

func TestRoute_InitRepliesWithoutPipeline(t *testing.T) {
	router, store := testRouter(t)

	store.EXPECT().FindByLabel(gomock.Any(), "alice_acme_widgets_preferences").Return(nil, nil)

	outcome, err := router.Route(context.Background(), testEvent("@toph-bot/init"))
	require.NoError(t, err)

	assert.Contains(t, outcome.Reply, "Welcome to toph-bot")
	assert.False(t, outcome.RunPipeline)
}

func TestRoute_InteractGatedByOnboarding(t *testing.T) {
	router, store := testRouter(t)

	store.EXPECT().FindByLabel(gomock.Any(), gomock.Any()).Return(nil, nil)

	outcome, err := router.Route(context.Background(), testEvent("@toph-bot is this change safe?"))
	require.NoError(t, err)

	assert.Contains(t, outcome.Reply, "@toph-bot/init")
	assert.False(t, outcome.RunPipeline)
}

func TestRoute_InteractRunsPipelineWhenInitialized(t *testing.T) {
	router, store := testRouter(t)

	store.EXPECT().FindByLabel(gomock.Any(), gomock.Any()).Return(&core.Block{ID: 1}, nil)

	outcome, err := router.Route(context.Background(), testEvent("@toph-bot is this change safe?"))
	require.NoError(t, err)

	assert.Empty(t, outcome.Reply)
	assert.True(t, outcome.RunPipeline)
	assert.Equal(t, "is this change safe?", outcome.Query)
}

func TestRoute_NoneYieldsEmptyOutcome(t *testing.T) {
	router, _ := testRouter(t)

	outcome, err := router.Route(context.Background(), testEvent("looks good to me"))
	require.NoError(t, err)

	assert.Equal(t, Outcome{}, outcome)
}
