// Package companyname guesses the primary organization named in a contract.
// It is a best-effort pattern scan, not entity recognition: an empty result
// on atypical phrasing is expected and fine.
package companyname

import (
	"regexp"
	"strings"
)

// Ordered: the more specific party phrasings first so "by and between X"
// is not shadowed by the bare "between X" form.
var phrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)by\s+and\s+between\s+(.+?)\s+and\b`),
	regexp.MustCompile(`(?i)entered\s+into\s+by\s+(.+?)\s+and\b`),
	regexp.MustCompile(`(?i)between\s+(.+?)\s+and\b`),
}

var suffixPattern = regexp.MustCompile(`([A-Z][\w&.'-]*(?:\s+[A-Z][\w&.'-]*)*\s+(?:Inc\.?|LLC|Ltd\.?|Corporation|Company))\b`)

// Boilerplate party label that the phrase patterns routinely mis-capture.
const excludedPhrase = "the undersigned"

const maxNameWords = 6

// Extract returns the first plausible company name found in text, or "".
// First matching pattern wins, first match within a pattern wins.
func Extract(text string) string {
	for _, pattern := range phrasePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := clean(match[1])
		if candidate == "" {
			continue
		}
		if len(strings.Fields(candidate)) > maxNameWords {
			continue
		}
		if strings.HasPrefix(strings.ToLower(candidate), excludedPhrase) {
			continue
		}
		return candidate
	}

	if match := suffixPattern.FindStringSubmatch(text); match != nil {
		return clean(match[1])
	}

	return ""
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimRight(s, ",;:")
	return strings.TrimSpace(s)
}
