// Package extractor finds image references in document text.
//
// Matching is purely textual: the document is never parsed as markdown or
// HTML, so a URL counts wherever it appears (image syntax, plain links,
// code blocks, comments).
package extractor

import (
	"fmt"
	"regexp"
)

// Extractor returns the distinct matches of a URL pattern in a text.
type Extractor struct {
	pattern *regexp.Regexp
}

// New creates an Extractor for pattern.
func New(pattern *regexp.Regexp) *Extractor {
	return &Extractor{pattern: pattern}
}

// Compile parses expr and returns an Extractor for it.
func Compile(expr string) (*Extractor, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid reference pattern %q: %w", expr, err)
	}
	return New(re), nil
}

// Pattern returns the expression the extractor matches.
func (e *Extractor) Pattern() string {
	return e.pattern.String()
}

// Extract returns every distinct match of the pattern in text, in order of
// first occurrence. Matches differing only in their query string are
// distinct. Returns nil when nothing matches.
func (e *Extractor) Extract(text string) []string {
	return deduplicate(e.pattern.FindAllString(text, -1))
}

// deduplicate removes repeated strings while preserving first-seen order.
func deduplicate(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(refs))
	result := make([]string, 0, len(refs))
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		result = append(result, ref)
	}

	return result
}
