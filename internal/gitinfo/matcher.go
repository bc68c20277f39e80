package gitinfo

import (
	"path"
	"strings"
)

// Matcher decides whether a tracked path should not be in version control.
//
// Patterns are a small subset of gitignore syntax:
//
//	name/    any path with a directory segment equal to name
//	glob     path.Match against the file's base name
//	!glob    exempts base names that would otherwise match
type Matcher struct {
	dirs    []string
	globs   []string
	exempts []string
}

// NewMatcher compiles patterns. Malformed globs never match.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		switch {
		case p == "" || p == "!":
		case strings.HasPrefix(p, "!"):
			m.exempts = append(m.exempts, p[1:])
		case strings.HasSuffix(p, "/"):
			m.dirs = append(m.dirs, strings.TrimSuffix(p, "/"))
		default:
			m.globs = append(m.globs, p)
		}
	}
	return m
}

// Match reports whether the forward-slash path p is unwanted.
func (m *Matcher) Match(p string) bool {
	base := path.Base(p)
	for _, glob := range m.exempts {
		if ok, _ := path.Match(glob, base); ok {
			return false
		}
	}

	segments := strings.Split(p, "/")
	for _, dir := range m.dirs {
		for _, seg := range segments[:len(segments)-1] {
			if seg == dir {
				return true
			}
		}
	}

	for _, glob := range m.globs {
		if ok, _ := path.Match(glob, base); ok {
			return true
		}
	}
	return false
}
