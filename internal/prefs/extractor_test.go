package prefs

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testExtractor() *Extractor {
	return NewExtractor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParse_YAML(t *testing.T) {
	content := `review_style: thorough
focus_areas:
  - security
  - testing
communication_tone: direct
code_style:
  naming: use descriptive names
`
	prefs := testExtractor().Parse(content)

	assert.Equal(t, "thorough", prefs.ReviewStyle)
	assert.Equal(t, []string{"security", "testing"}, prefs.FocusAreas)
	assert.Equal(t, "direct", prefs.CommunicationTone)
	assert.Equal(t, "use descriptive names", prefs.CodeStyle["naming"])
	// Unmentioned fields keep their defaults.
	assert.Equal(t, DefaultDetailLevel, prefs.DetailLevel)
	assert.Equal(t, DefaultFeedbackFormat, prefs.FeedbackFormat)
}

func TestParse_YAMLFencedBlock(t *testing.T) {
	content := "Here you go:\n```yaml\nreview_style: light\nfocus_areas: [performance]\n```\nthanks!"

	prefs := testExtractor().Parse(content)

	assert.Equal(t, "light", prefs.ReviewStyle)
	assert.Equal(t, []string{"performance"}, prefs.FocusAreas)
}

func TestParse_JSON(t *testing.T) {
	content := `{"review_style": "light", "detail_level": "low", "testing": {"coverage": "require unit tests"}}`

	prefs := testExtractor().Parse(content)

	assert.Equal(t, "light", prefs.ReviewStyle)
	assert.Equal(t, "low", prefs.DetailLevel)
	assert.Equal(t, "require unit tests", prefs.Testing["coverage"])
	assert.Equal(t, defaultFocusAreas(), prefs.FocusAreas)
}

func TestParse_FreeText(t *testing.T) {
	content := "Please be thorough and focus on security and performance"

	prefs := testExtractor().Parse(content)

	assert.Equal(t, "thorough", prefs.ReviewStyle)
	assert.Equal(t, []string{"security", "performance"}, prefs.FocusAreas)
	// "thorough" also resolves the detail level.
	assert.Equal(t, "high", prefs.DetailLevel)
	assert.Equal(t, DefaultTone, prefs.CommunicationTone)
}

func TestParse_FreeTextFirstMatchWins(t *testing.T) {
	// "thorough" appears after "moderate" in the text but its bucket is
	// probed first.
	content := "a moderate but thorough review please"

	prefs := testExtractor().Parse(content)

	assert.Equal(t, "thorough", prefs.ReviewStyle)
}

func TestParse_InvalidYAMLFallsBackToFreeText(t *testing.T) {
	content := "---\nreview_style: [thorough"

	prefs := testExtractor().Parse(content)

	// The strict parse fails, the free-text pass still sees "thorough".
	assert.Equal(t, "thorough", prefs.ReviewStyle)
}

func TestParse_NoSignalYieldsDefaults(t *testing.T) {
	prefs := testExtractor().Parse("hello world")

	assert.Equal(t, DefaultPreferences(), prefs)
}

func TestParse_Markdown(t *testing.T) {
	content := `## Code Review Preferences
- Review style: thorough
- Focus areas: security, performance
- Communication tone: friendly

## Programming Preferences
- Code style: prefer explicit over implicit
`
	prefs := testExtractor().Parse(content)

	assert.Equal(t, "thorough", prefs.ReviewStyle)
	assert.Equal(t, "friendly", prefs.CommunicationTone)
	assert.Equal(t, []string{"security", "performance"}, prefs.FocusAreas)
	assert.Equal(t, "prefer explicit over implicit", prefs.CodeStyle["Code style"])
	assert.Equal(t, "prefer explicit over implicit", prefs.CodeStyle["explicitness"])
}

func TestParse_MarkdownSectionRouting(t *testing.T) {
	content := `## Testing Preferences
- unit tests: required for business logic

## Communication
- tone: direct please
`
	prefs := testExtractor().Parse(content)

	assert.Equal(t, "required for business logic", prefs.Testing["unit tests"])
	assert.Equal(t, "direct", prefs.CommunicationTone)
}

func TestExtractCodeBlock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lang    string
		want    string
	}{
		{"complete block", "pre\n```yaml\nkey: value\n```\npost", "yaml", "key: value"},
		{"case-insensitive fence", "```YAML\nkey: value\n```", "yaml", "key: value"},
		{"unterminated block", "```yaml\nkey: value", "yaml", ""},
		{"no block", "just text", "yaml", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractCodeBlock(tc.content, tc.lang))
		})
	}
}
