package prefs

import "strings"

// SetupMarker introduces inline preference content in a comment that carries
// no fenced block.
const SetupMarker = "@toph-bot setup"

var preferenceIndicators = []string{
	"```yaml", "```json", "```markdown",
	"review_style:", "focus_areas:", "communication_tone:",
	"## code review", "## programming preferences",
	SetupMarker,
}

// LooksLikePreferences reports whether a comment appears to contain
// preference content.
func LooksLikePreferences(commentBody string) bool {
	lower := strings.ToLower(commentBody)
	for _, indicator := range preferenceIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// ExtractContent pulls the preference content out of a GitHub comment: the
// first fenced code block if present, else the text after the setup marker,
// else the whole comment when it shows preference indicators. Returns "" when
// the comment carries no extractable content.
func ExtractContent(commentBody string) string {
	for _, lang := range []string{"yaml", "json", "markdown", "md", "txt"} {
		if block := extractCodeBlock(commentBody, lang); block != "" {
			return block
		}
	}

	lower := strings.ToLower(commentBody)
	if idx := strings.Index(lower, SetupMarker); idx != -1 {
		return strings.TrimSpace(commentBody[idx+len(SetupMarker):])
	}

	if LooksLikePreferences(commentBody) {
		return strings.TrimSpace(commentBody)
	}
	return ""
}
