// Package prefs implements per-user, per-repository review preferences: the
// multi-format extractor that turns free-form comment text into a structured
// record, the canonical storage rendering, and the manager that persists
// records through a core.BlockStore.
package prefs

import "slices"

// Default field values. A field holding its default is treated as unset by
// the markdown/free-text merge pass.
const (
	DefaultReviewStyle    = "moderate"
	DefaultTone           = "professional"
	DefaultDetailLevel    = "medium"
	DefaultFeedbackFormat = "both"
)

func defaultFocusAreas() []string {
	return []string{"readability", "performance", "security"}
}

// UserPreferences is the structured preference record for one user in one
// repository.
type UserPreferences struct {
	ReviewStyle       string            `yaml:"review_style" json:"review_style"`
	FocusAreas        []string          `yaml:"focus_areas" json:"focus_areas"`
	CommunicationTone string            `yaml:"communication_tone" json:"communication_tone"`
	DetailLevel       string            `yaml:"detail_level" json:"detail_level"`
	FeedbackFormat    string            `yaml:"feedback_format" json:"feedback_format"`
	CodeStyle         map[string]string `yaml:"code_style" json:"code_style"`
	Testing           map[string]string `yaml:"testing" json:"testing"`
	CodebaseSpecific  map[string]string `yaml:"codebase_specific" json:"codebase_specific"`
}

// DefaultPreferences returns a record with every field at its default.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		ReviewStyle:       DefaultReviewStyle,
		FocusAreas:        defaultFocusAreas(),
		CommunicationTone: DefaultTone,
		DetailLevel:       DefaultDetailLevel,
		FeedbackFormat:    DefaultFeedbackFormat,
		CodeStyle:         map[string]string{},
		Testing:           map[string]string{},
		CodebaseSpecific:  map[string]string{},
	}
}

func hasDefaultFocusAreas(p UserPreferences) bool {
	return slices.Equal(p.FocusAreas, defaultFocusAreas())
}

// merge combines two records, primary taking precedence. A primary field that
// still holds its default is considered unset and yields to the fallback
// value, so explicitly selecting a default cannot be told apart from leaving
// the field out.
func merge(primary, fallback UserPreferences) UserPreferences {
	out := UserPreferences{
		ReviewStyle:       primary.ReviewStyle,
		FocusAreas:        primary.FocusAreas,
		CommunicationTone: primary.CommunicationTone,
		DetailLevel:       primary.DetailLevel,
		FeedbackFormat:    primary.FeedbackFormat,
		CodeStyle:         mergeMaps(fallback.CodeStyle, primary.CodeStyle),
		Testing:           mergeMaps(fallback.Testing, primary.Testing),
		CodebaseSpecific:  mergeMaps(fallback.CodebaseSpecific, primary.CodebaseSpecific),
	}
	if out.ReviewStyle == DefaultReviewStyle {
		out.ReviewStyle = fallback.ReviewStyle
	}
	if hasDefaultFocusAreas(primary) {
		out.FocusAreas = fallback.FocusAreas
	}
	if out.CommunicationTone == DefaultTone {
		out.CommunicationTone = fallback.CommunicationTone
	}
	if out.DetailLevel == DefaultDetailLevel {
		out.DetailLevel = fallback.DetailLevel
	}
	if out.FeedbackFormat == DefaultFeedbackFormat {
		out.FeedbackFormat = fallback.FeedbackFormat
	}
	return out
}

// mergeMaps overlays b on top of a without mutating either.
func mergeMaps(a, b map[string]string) map[string]string {
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
