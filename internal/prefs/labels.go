package prefs

import (
	"fmt"
	"strings"
)

var labelCharReplacer = strings.NewReplacer("/", "_", ":", "_", " ", "_")

// sanitizeLabel normalizes text for use in block labels. Each separator
// character maps to one underscore, so adjacent separators are preserved and
// distinct inputs keep distinct labels.
func sanitizeLabel(text string) string {
	return strings.ToLower(labelCharReplacer.Replace(text))
}

// PreferenceLabel builds the unique block label for a (user, repository)
// pair.
func PreferenceLabel(user, repoFullName string) string {
	return fmt.Sprintf("%s_%s_preferences", user, sanitizeLabel(repoFullName))
}

// preferencePrefix is the label prefix used when updating an existing block.
func preferencePrefix(user, repoFullName string) string {
	return fmt.Sprintf("%s_%s", user, sanitizeLabel(repoFullName))
}
