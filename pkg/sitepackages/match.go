package sitepackages

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher matches dist-info directory names against a distribution name.
type Matcher struct {
	name []rune
}

// NewMatcher returns a matcher for the distribution name dist.
func NewMatcher(dist string) *Matcher {
	return &Matcher{name: []rune(dist)}
}

// isSeparator reports whether r is one of the interchangeable name
// separators.
func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.'
}

// matchRune compares a single rune of the distribution name against a rune
// of a directory name.
func matchRune(want, got rune) bool {
	if isSeparator(want) {
		return isSeparator(got)
	}
	if want == got {
		return true
	}
	// EqualFold applies Unicode simple case folding.
	return strings.EqualFold(string(want), string(got))
}

// MatchPrefix reports whether s starts with the distribution name followed
// by '-' and a digit, as in "Foo_Bar-1.2.0.dist-info" for "foo-bar".
func (m *Matcher) MatchPrefix(s string) bool {
	if len(m.name) == 0 {
		return false
	}
	rest := s
	for _, want := range m.name {
		got, size := utf8.DecodeRuneInString(rest)
		if size == 0 || !matchRune(want, got) {
			return false
		}
		rest = rest[size:]
	}
	if !strings.HasPrefix(rest, "-") {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest[1:])
	return unicode.IsDigit(r)
}

// MatchMetadataDir reports whether entry is a dist-info directory name
// belonging to the distribution.
func (m *Matcher) MatchMetadataDir(entry string) bool {
	return strings.HasSuffix(entry, MetadataSuffix) && m.MatchPrefix(entry)
}
