package prefs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// Extractor parses free-form preference content. Format detection is an
// ordered chain of (probe, parse) pairs with a terminal free-text parser, so
// Parse never fails. The strict YAML/JSON probes run before the looser
// markdown heuristics to avoid false positives.
type Extractor struct {
	formats []format
	logger  *slog.Logger
}

type format struct {
	name  string
	probe func(string) bool
	parse func(*Extractor, string) (UserPreferences, error)
}

// NewExtractor creates an Extractor with the standard detection chain.
func NewExtractor(logger *slog.Logger) *Extractor {
	e := &Extractor{logger: logger}
	e.formats = []format{
		{name: "yaml", probe: isYAML, parse: (*Extractor).parseYAML},
		{name: "json", probe: isJSON, parse: (*Extractor).parseJSON},
		{name: "markdown", probe: isMarkdown, parse: (*Extractor).parseMarkdown},
	}
	return e
}

// Parse converts preference content in any supported format into a structured
// record. Strict-format parse failures degrade to free-text keyword
// extraction; this method never returns an error to its caller.
func (e *Extractor) Parse(content string) UserPreferences {
	for _, f := range e.formats {
		if !f.probe(content) {
			continue
		}
		prefs, err := f.parse(e, content)
		if err != nil {
			e.logger.Warn("preference parse failed, falling back to free text",
				"format", f.name, "error", err)
			break
		}
		return prefs
	}
	return e.parseText(content)
}

var yamlTopLevelKeys = []string{"review_style:", "focus_areas:", "communication_tone:"}

func isYAML(content string) bool {
	if strings.Contains(content, "```yaml") {
		return true
	}
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "---") {
		return true
	}
	for _, key := range yamlTopLevelKeys {
		if strings.HasPrefix(trimmed, key) {
			return true
		}
	}
	return false
}

func isJSON(content string) bool {
	if strings.Contains(content, "```json") {
		return true
	}
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")
}

func isMarkdown(content string) bool {
	return strings.Contains(content, "##") ||
		strings.Contains(content, "**") ||
		strings.Contains(content, "- ")
}

func (e *Extractor) parseYAML(content string) (UserPreferences, error) {
	body := extractCodeBlock(content, "yaml")
	if body == "" {
		body = strings.TrimSpace(content)
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(body), &data); err != nil {
		return UserPreferences{}, fmt.Errorf("invalid yaml: %w", err)
	}
	if data == nil {
		return UserPreferences{}, fmt.Errorf("yaml content is not a mapping")
	}
	return fromMap(data), nil
}

func (e *Extractor) parseJSON(content string) (UserPreferences, error) {
	body := extractCodeBlock(content, "json")
	if body == "" {
		body = strings.TrimSpace(content)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return UserPreferences{}, fmt.Errorf("invalid json: %w", err)
	}
	return fromMap(data), nil
}

// fromMap builds a record from recognized keys, defaulting any missing key.
func fromMap(data map[string]any) UserPreferences {
	prefs := DefaultPreferences()

	if v, ok := asString(data["review_style"]); ok {
		prefs.ReviewStyle = v
	}
	if v, ok := asStringSlice(data["focus_areas"]); ok {
		prefs.FocusAreas = v
	}
	if v, ok := asString(data["communication_tone"]); ok {
		prefs.CommunicationTone = v
	}
	if v, ok := asString(data["detail_level"]); ok {
		prefs.DetailLevel = v
	}
	if v, ok := asString(data["feedback_format"]); ok {
		prefs.FeedbackFormat = v
	}
	if v, ok := asStringMap(data["code_style"]); ok {
		prefs.CodeStyle = v
	}
	if v, ok := asStringMap(data["testing"]); ok {
		prefs.Testing = v
	}
	if v, ok := asStringMap(data["codebase_specific"]); ok {
		prefs.CodebaseSpecific = v
	}
	return prefs
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asStringSlice(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out, true
}

func asStringMap(v any) (map[string]string, bool) {
	out := map[string]string{}
	switch m := v.(type) {
	case map[string]any:
		for k, val := range m {
			out[k] = fmt.Sprint(val)
		}
	case map[any]any:
		for k, val := range m {
			out[fmt.Sprint(k)] = fmt.Sprint(val)
		}
	default:
		return nil, false
	}
	return out, true
}

// extractCodeBlock returns the content of the first ```lang fenced block, or
// "" if no complete block is present. The fence marker match is
// case-insensitive.
func extractCodeBlock(content, lang string) string {
	marker := "```" + lang
	lower := strings.ToLower(content)
	start := strings.Index(lower, marker)
	if start == -1 {
		return ""
	}
	start += len(marker)
	end := strings.Index(content[start:], "```")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(content[start : start+end])
}
