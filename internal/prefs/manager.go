package prefs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tophbot/toph/internal/core"
)

// Manager owns the preference lifecycle for (user, repository) pairs on top
// of a core.BlockStore. It issues at most one read-then-write per command and
// does not coordinate across concurrent requests for the same pair.
type Manager struct {
	store     core.BlockStore
	extractor *Extractor
	logger    *slog.Logger
}

// NewManager creates a preference manager.
func NewManager(store core.BlockStore, extractor *Extractor, logger *slog.Logger) *Manager {
	return &Manager{store: store, extractor: extractor, logger: logger}
}

// FindExisting returns the stored preference block for the pair, or nil.
func (m *Manager) FindExisting(ctx context.Context, user, repoFullName string) (*core.Block, error) {
	return m.store.FindByLabel(ctx, PreferenceLabel(user, repoFullName))
}

// findOrCreate returns the stored block, creating one with defaults on first
// contact.
func (m *Manager) findOrCreate(ctx context.Context, user, repoFullName string) (*core.Block, error) {
	label := PreferenceLabel(user, repoFullName)
	block, err := m.store.FindByLabel(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("failed to look up preference block %q: %w", label, err)
	}
	if block != nil {
		return block, nil
	}

	m.logger.Info("creating default preference block", "label", label)
	value := FormatForStorage(DefaultPreferences(), user, repoFullName)
	description := fmt.Sprintf("User preferences for %s in %s", user, repoFullName)
	return m.store.Create(ctx, label, value, description)
}

// Update parses the raw preference content, renders it and persists it,
// overwriting any existing record for the pair.
func (m *Manager) Update(ctx context.Context, user, repoFullName, content string) (*core.Block, error) {
	if _, err := m.findOrCreate(ctx, user, repoFullName); err != nil {
		return nil, err
	}

	parsed := m.extractor.Parse(content)
	value := FormatForStorage(parsed, user, repoFullName)

	block, err := m.store.UpdateByPrefix(ctx,
		preferencePrefix(user, repoFullName),
		PreferenceLabel(user, repoFullName),
		value,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update preference block: %w", err)
	}
	return block, nil
}

// Context returns the stored preference block value for use as LLM context,
// or "" when the pair has no record yet.
func (m *Manager) Context(ctx context.Context, user, repoFullName string) string {
	block, err := m.FindExisting(ctx, user, repoFullName)
	if err != nil {
		m.logger.Warn("failed to load preference context", "user", user, "repo", repoFullName, "error", err)
		return ""
	}
	if block == nil {
		return ""
	}
	return block.Value
}

// HandleInit implements the init command: idempotent when a record exists,
// immediate parse-and-persist when the comment carries preference content,
// and a format guide otherwise.
func (m *Manager) HandleInit(ctx context.Context, user, repoFullName, commentBody string) (string, error) {
	existing, err := m.FindExisting(ctx, user, repoFullName)
	if err != nil {
		return "", fmt.Errorf("failed to look up existing preferences: %w", err)
	}
	if existing != nil {
		return fmt.Sprintf(alreadyConfiguredReply, repoFullName, SummaryFromStored(existing.Value).Format()), nil
	}

	content := ExtractContent(commentBody)
	if content == "" {
		return fmt.Sprintf(initWelcomeReply, repoFullName), nil
	}

	block, err := m.Update(ctx, user, repoFullName, content)
	if err != nil {
		m.logger.Error("failed to initialize preferences", "user", user, "repo", repoFullName, "error", err)
		return initFailedReply, nil
	}
	return fmt.Sprintf(initSuccessReply, repoFullName, SummaryFromStored(block.Value).Format()), nil
}

// HandleConfigure implements the configure command: show-current-and-prompt
// when the comment carries no extractable content, overwrite plus change
// summary otherwise.
func (m *Manager) HandleConfigure(ctx context.Context, user, repoFullName, commentBody string) (string, error) {
	content := ExtractContent(commentBody)
	if content == "" {
		current := m.currentSummary(ctx, user, repoFullName)
		return fmt.Sprintf(configurePromptReply, repoFullName, current), nil
	}

	block, err := m.Update(ctx, user, repoFullName, content)
	if err != nil {
		m.logger.Error("failed to update preferences", "user", user, "repo", repoFullName, "error", err)
		return configureFailedReply, nil
	}

	summary := SummaryFromStored(block.Value)
	return fmt.Sprintf(configureSuccessReply, summary.FormatChanges(), repoFullName, summary.Format()), nil
}

// EnsureInitialized gates the interaction pipeline: it returns an onboarding
// message and false when the pair has no preference record yet.
func (m *Manager) EnsureInitialized(ctx context.Context, user, repoFullName string) (string, bool, error) {
	existing, err := m.FindExisting(ctx, user, repoFullName)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up existing preferences: %w", err)
	}
	if existing == nil {
		return fmt.Sprintf(onboardingReply, repoFullName), false, nil
	}
	return "", true, nil
}

func (m *Manager) currentSummary(ctx context.Context, user, repoFullName string) string {
	block, err := m.FindExisting(ctx, user, repoFullName)
	if err != nil || block == nil {
		return "- No preferences set yet"
	}
	return SummaryFromStored(block.Value).Format()
}

const alreadyConfiguredReply = `🔧 **Preferences Already Exist**

You already have preferences set up for ` + "`%s`" + `.
Use ` + "`@toph-bot/configure`" + ` to update them, or let me know if you'd like to reset them completely.

**Current preferences:**
%s
`

const initWelcomeReply = `👋 **Welcome to toph-bot!**

I'd love to learn your preferences for reviewing code in ` + "`%s`" + `.
Please reply with your preferences in any of these formats:

**📋 Markdown Format:**
` + "```markdown" + `
## Code Review Preferences
- Review style: thorough|moderate|light
- Focus areas: security, performance, readability
- Communication tone: friendly|professional|direct

## Programming Preferences
- Code style: prefer explicit over implicit
- Testing: require unit tests for business logic
` + "```" + `

**📄 YAML Format:**
` + "```yaml" + `
review_style: thorough
focus_areas: [security, performance, readability]
communication_tone: friendly
code_style:
  explicitness: "prefer explicit over implicit"
  testing: "require unit tests"
` + "```" + `

**📝 Plain Text:**
Just describe your preferences naturally - I'll understand!

*Example: "Please be thorough in reviews, focus on security and performance, and use a friendly tone."*
`

const initSuccessReply = `✅ **Preferences Initialized Successfully!**

I've created your personalized settings for ` + "`%s`" + `.

**What I remember about you:**
%s

You can update these anytime with ` + "`@toph-bot/configure`" + ` + new preferences!
`

const initFailedReply = "❌ Failed to initialize preferences. Please try again."

const configurePromptReply = `🔧 **Configure Your Preferences**

Please provide your updated preferences in the same comment.
I support Markdown, YAML, JSON and plain text formats.

**Current preferences for ` + "`%s`" + `:**
%s

*Reply with your new preferences to update them.*
`

const configureSuccessReply = `✅ **Preferences Updated Successfully!**

**Changes made:**
%s

**Updated preferences for ` + "`%s`" + `:**
%s
`

const configureFailedReply = "❌ Failed to update preferences. Please check your format and try again."

const onboardingReply = `👋 **Hi there!**

I notice this is our first interaction in ` + "`%s`" + `.
To provide you with personalized reviews, I need to learn your preferences first.

Please run ` + "`@toph-bot/init`" + ` to set up your preferences, then I'll be able to help you!

*This only takes a minute and makes our interactions much more valuable.* 🚀
`
