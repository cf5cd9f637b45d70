package prefs

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatForStorage renders a record into the canonical block value: a
// human-readable markdown document that SummaryFromStored and the extractor
// can both read back.
func FormatForStorage(p UserPreferences, user, repoFullName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# User Preferences for %s in %s\n\n", user, repoFullName)
	b.WriteString("## Code Review Style\n")
	fmt.Fprintf(&b, "- Review depth: %s\n", p.ReviewStyle)
	fmt.Fprintf(&b, "- Focus areas: %s\n", strings.Join(p.FocusAreas, ", "))
	fmt.Fprintf(&b, "- Communication tone: %s\n", p.CommunicationTone)
	fmt.Fprintf(&b, "- Detail level: %s\n", p.DetailLevel)
	fmt.Fprintf(&b, "- Feedback format: %s\n", p.FeedbackFormat)

	b.WriteString("\n## Programming Preferences\n")
	b.WriteString(formatMapSection(p.CodeStyle, "code style"))
	b.WriteString("\n## Testing Preferences\n")
	b.WriteString(formatMapSection(p.Testing, "testing"))
	b.WriteString("\n## Codebase-Specific Context\n")
	b.WriteString(formatMapSection(p.CodebaseSpecific, "codebase"))

	fmt.Fprintf(&b, "\n---\nLast updated: %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	return b.String()
}

func formatMapSection(data map[string]string, name string) string {
	if len(data) == 0 {
		return fmt.Sprintf("- No specific %s preferences set\n", name)
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, data[k])
	}
	return b.String()
}

// Summary holds the headline values re-extracted from a stored block for
// confirmation messages.
type Summary struct {
	ReviewStyle       string
	FocusAreas        string
	CommunicationTone string
}

// SummaryFromStored re-extracts the headline preference lines from a stored
// block value.
func SummaryFromStored(value string) Summary {
	var s Summary
	for _, line := range strings.Split(value, "\n") {
		switch {
		case strings.Contains(line, "Review depth:"):
			s.ReviewStyle = afterColon(line)
		case strings.Contains(line, "Focus areas:"):
			s.FocusAreas = afterColon(line)
		case strings.Contains(line, "Communication tone:"):
			s.CommunicationTone = afterColon(line)
		}
	}
	return s
}

func afterColon(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// Format renders a summary as markdown bullet lines for posted replies.
func (s Summary) Format() string {
	if s == (Summary{}) {
		return "- No preferences available"
	}
	var lines []string
	if s.ReviewStyle != "" {
		lines = append(lines, "- Review Style: "+s.ReviewStyle)
	}
	if s.FocusAreas != "" {
		lines = append(lines, "- Focus Areas: "+s.FocusAreas)
	}
	if s.CommunicationTone != "" {
		lines = append(lines, "- Communication Tone: "+s.CommunicationTone)
	}
	return strings.Join(lines, "\n")
}

// FormatChanges renders a before/after change summary for configure replies.
func (s Summary) FormatChanges() string {
	if s == (Summary{}) {
		return "- No changes detected"
	}
	var lines []string
	if s.ReviewStyle != "" {
		lines = append(lines, fmt.Sprintf("- Review Style: updated to %q", s.ReviewStyle))
	}
	if s.FocusAreas != "" {
		lines = append(lines, fmt.Sprintf("- Focus Areas: updated to %q", s.FocusAreas))
	}
	if s.CommunicationTone != "" {
		lines = append(lines, fmt.Sprintf("- Communication Tone: updated to %q", s.CommunicationTone))
	}
	return strings.Join(lines, "\n")
}
