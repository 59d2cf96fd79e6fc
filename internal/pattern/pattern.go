// Package pattern compiles pipe-separated ignore patterns into an efficient
// matcher. Segments without wildcards go to a constant-time exact-match set;
// segments containing * or ? are translated to anchored regular expressions
// and compiled together into a single matcher.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// CompiledPatterns holds the pre-compiled form of an ignore pattern string.
// It is built once per run, before traversal starts, and is read-only
// afterwards.
type CompiledPatterns struct {
	// literals are segments without wildcards, matched by string equality
	literals map[string]struct{}

	// globs is the combined regexp for all wildcard segments, nil when the
	// pattern had none
	globs *regexp.Regexp
}

// Compile parses a pipe-separated pattern string such as "node_modules|*.log".
// Segments are trimmed of surrounding whitespace and empty segments are
// dropped, so "a||b" behaves as "a|b". A compile failure reports the raw
// pattern string and invalidates the whole ignore pattern.
func Compile(raw string) (*CompiledPatterns, error) {
	compiled := &CompiledPatterns{literals: make(map[string]struct{})}

	var globs []string
	for _, segment := range strings.Split(raw, "|") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		if strings.ContainsAny(segment, "*?") {
			globs = append(globs, globToRegexp(segment))
		} else {
			compiled.literals[segment] = struct{}{}
		}
	}

	if len(globs) > 0 {
		re, err := regexp.Compile("(?:" + strings.Join(globs, ")|(?:") + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", raw, err)
		}
		compiled.globs = re
	}

	return compiled, nil
}

// Matches reports whether name matches any compiled segment. The literal set
// is consulted first as a fast path; this ordering never changes the outcome.
func (c *CompiledPatterns) Matches(name string) bool {
	if _, ok := c.literals[name]; ok {
		return true
	}
	if c.globs != nil {
		return c.globs.MatchString(name)
	}
	return false
}

// globToRegexp translates one glob segment to an anchored regexp source
// string: * matches any sequence, ? matches exactly one character, and every
// other regexp metacharacter is escaped so it matches literally.
func globToRegexp(segment string) string {
	var b strings.Builder
	b.Grow(len(segment)*2 + 2)
	b.WriteByte('^')

	for _, r := range segment {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '.', '+', '(', ')', '[', ']', '{', '}', '^', '$', '\\', '|':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte('$')
	return b.String()
}
