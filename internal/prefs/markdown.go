package prefs

import "strings"

type entryKind int

const (
	entryKey entryKind = iota
	entryItem
)

type sectionEntry struct {
	kind  entryKind
	value string
}

// parseMarkdown groups lines into named sections, derives a provisional
// record from the section content, then merges it with a free-text pass over
// the entire raw content. Values found by the section pass win whenever they
// differ from the default.
func (e *Extractor) parseMarkdown(content string) (UserPreferences, error) {
	sections := map[string][]sectionEntry{}
	var current string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "##"):
			current = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(line, "##", "")))
			sections[current] = nil
		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
			key := strings.ReplaceAll(line, "**", "")
			key = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(key, ":", "")))
			if current != "" {
				sections[current] = append(sections[current], sectionEntry{entryKey, key})
			}
		case strings.HasPrefix(line, "- "):
			item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if current != "" {
				sections[current] = append(sections[current], sectionEntry{entryItem, item})
			}
		}
	}

	structured := extractFromSections(sections)
	return merge(structured, e.parseText(content)), nil
}

func extractFromSections(sections map[string][]sectionEntry) UserPreferences {
	prefs := DefaultPreferences()

	for name, entries := range sections {
		switch {
		case strings.Contains(name, "review"):
			processReviewSection(entries, &prefs)
		case strings.Contains(name, "programming") || strings.Contains(name, "code"):
			processKeyValueSection(entries, prefs.CodeStyle)
		case strings.Contains(name, "testing"):
			processKeyValueSection(entries, prefs.Testing)
		case strings.Contains(name, "communication"):
			processCommunicationSection(entries, &prefs)
		}
	}
	return prefs
}

func processReviewSection(entries []sectionEntry, prefs *UserPreferences) {
	for _, entry := range entries {
		if entry.kind != entryItem {
			continue
		}
		item := strings.ToLower(entry.value)
		for _, area := range []string{"security", "performance", "readability"} {
			if strings.Contains(item, area) {
				prefs.FocusAreas = appendMissing(prefs.FocusAreas, area)
				break
			}
		}
	}
}

func processKeyValueSection(entries []sectionEntry, dst map[string]string) {
	for _, entry := range entries {
		if entry.kind != entryItem {
			continue
		}
		key, value, found := strings.Cut(entry.value, ":")
		if !found {
			continue
		}
		dst[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
}

func processCommunicationSection(entries []sectionEntry, prefs *UserPreferences) {
	for _, entry := range entries {
		if entry.kind != entryItem {
			continue
		}
		item := strings.ToLower(entry.value)
		switch {
		case strings.Contains(item, "friendly"):
			prefs.CommunicationTone = "friendly"
		case strings.Contains(item, "direct"):
			prefs.CommunicationTone = "direct"
		case strings.Contains(item, "professional"):
			prefs.CommunicationTone = "professional"
		}
	}
}

func appendMissing(areas []string, area string) []string {
	for _, a := range areas {
		if a == area {
			return areas
		}
	}
	return append(areas, area)
}
