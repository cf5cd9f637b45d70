package storage

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// likeToRegexp mirrors Postgres LIKE matching with backslash escaping, so the
// escaper's effect on pattern matching can be checked without a database.
func likeToRegexp(t *testing.T, pattern string) *regexp.Regexp {
	t.Helper()
	var b strings.Builder
	b.WriteString("^")
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(".*")
		case r == '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

func TestLikeEscaper_PrefixMatchesLiterally(t *testing.T) {
	// User "dan" in repo "a/b" yields the prefix "dan_a_b". Without escaping,
	// each underscore is a single-character wildcard and the pattern also
	// matches labels owned by a user named "dan-a-b".
	prefix := "dan_a_b"
	own := "dan_a_b_preferences"
	foreign := "dan-a-b_x_preferences"

	unescaped := likeToRegexp(t, prefix+"%")
	assert.True(t, unescaped.MatchString(foreign))

	pattern := likeToRegexp(t, likeEscaper.Replace(prefix)+"%")
	assert.True(t, pattern.MatchString(own))
	assert.False(t, pattern.MatchString(foreign))
}

func TestLikeEscaper_QuotesMetacharacters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dan_a_b", `dan\_a\_b`},
		{"100%_done", `100\%\_done`},
		{`a\b`, `a\\b`},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, likeEscaper.Replace(tc.in))
	}
}
