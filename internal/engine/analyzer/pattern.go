package analyzer

import (
	"path/filepath"
	"strings"

	"go.trai.ch/archlint/internal/core/domain"
)

type matcher func(path, pattern string) bool

// matcherFor returns the pattern matcher for the language of path.
func matcherFor(path string) matcher {
	if strings.EqualFold(filepath.Ext(path), ".go") {
		return MatchesGoPattern
	}
	return MatchesPattern
}

// MatchesPattern reports whether path contains pattern. Patterns rooted at src/
// also match the folder below src/ as it appears in relative, absolute or
// aliased import specifiers.
func MatchesPattern(path, pattern string) bool {
	p := strings.ToLower(strings.ReplaceAll(path, `\`, "/"))
	norm := domain.NormalizeRulePattern(pattern)
	if strings.Trim(norm, "/") == "" {
		return false
	}

	if strings.Contains(p, norm) {
		return true
	}

	folder, ok := strings.CutPrefix(norm, "src/")
	if !ok || folder == "" {
		return false
	}

	return strings.Contains(p, "/"+folder) ||
		strings.Contains(p, "../"+folder) ||
		strings.Contains(p, "@/"+folder) ||
		strings.Contains(p, folder)
}

// MatchesGoPattern reports whether path contains pattern or, for Go package
// paths, whether the last path segment contains the last segment of pattern.
func MatchesGoPattern(path, pattern string) bool {
	p := strings.ToLower(strings.ReplaceAll(path, `\`, "/"))
	norm := domain.NormalizeRulePattern(pattern)
	if strings.Trim(norm, "/") == "" {
		return false
	}

	if strings.Contains(p, norm) {
		return true
	}

	last := lastSegment(norm)
	if last == "" {
		return false
	}
	return strings.Contains(lastSegment(p), last)
}

func lastSegment(s string) string {
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}
