package prefs

import "strings"

// Keyword buckets for free-text extraction. Buckets are probed in declared
// order and the first match wins per category, so "thorough" resolves the
// review style before "moderate" is ever considered.
type keywordBucket struct {
	value    string
	keywords []string
}

var styleBuckets = []keywordBucket{
	{"thorough", []string{"thorough", "detailed", "comprehensive", "in-depth"}},
	{"light", []string{"light", "brief", "quick", "simple", "minimal"}},
	{"moderate", []string{"moderate", "balanced", "standard"}},
}

var toneBuckets = []keywordBucket{
	{"friendly", []string{"friendly", "casual", "warm", "conversational"}},
	{"direct", []string{"direct", "straight", "blunt", "concise"}},
	{"professional", []string{"professional", "formal", "business"}},
}

var detailBuckets = []keywordBucket{
	{"high", []string{"detailed", "verbose", "comprehensive", "thorough"}},
	{"low", []string{"brief", "summary", "minimal", "short"}},
	{"medium", []string{"moderate", "balanced", "standard"}},
}

// Focus areas accumulate across buckets instead of first-wins.
var focusBuckets = []keywordBucket{
	{"security", []string{"security", "vulnerability", "secure", "safety", "auth"}},
	{"performance", []string{"performance", "speed", "optimization", "efficient", "fast"}},
	{"readability", []string{"readability", "readable", "clean", "clear", "maintainable"}},
	{"testing", []string{"testing", "test", "coverage", "unit test", "qa"}},
	{"documentation", []string{"documentation", "docs", "comments", "readme"}},
	{"architecture", []string{"architecture", "design", "patterns", "structure"}},
}

// parseText is the terminal parser of the detection chain: independent
// keyword matching per category over the lowercased content. It cannot fail.
func (e *Extractor) parseText(content string) UserPreferences {
	prefs := DefaultPreferences()
	lower := strings.ToLower(content)

	if v, ok := matchBucket(lower, styleBuckets); ok {
		prefs.ReviewStyle = v
	}
	if v, ok := matchBucket(lower, toneBuckets); ok {
		prefs.CommunicationTone = v
	}
	if v, ok := matchBucket(lower, detailBuckets); ok {
		prefs.DetailLevel = v
	}

	var areas []string
	for _, bucket := range focusBuckets {
		if containsAny(lower, bucket.keywords) {
			areas = append(areas, bucket.value)
		}
	}
	if len(areas) > 0 {
		prefs.FocusAreas = areas
	}

	hints := map[string]string{}
	if strings.Contains(lower, "explicit") {
		hints["explicitness"] = "prefer explicit over implicit"
	}
	if strings.Contains(lower, "composition") {
		hints["inheritance"] = "favor composition over inheritance"
	}
	if strings.Contains(lower, "descriptive") {
		hints["naming"] = "use descriptive names"
	}
	if len(hints) > 0 {
		prefs.CodeStyle = hints
	}

	return prefs
}

func matchBucket(lower string, buckets []keywordBucket) (string, bool) {
	for _, bucket := range buckets {
		if containsAny(lower, bucket.keywords) {
			return bucket.value, true
		}
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
