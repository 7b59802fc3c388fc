package device

import "strings"

// ScanChangingData returns the payload lines containing any of the
// given substrings, compared case-insensitively. Matches keep their
// original order, are trimmed of surrounding whitespace, and are
// capped at max.
func ScanChangingData(payload string, keywords []string, max int) []string {
	var matches []string

	for _, line := range strings.Split(payload, "\n") {
		if len(matches) == max {
			break
		}
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matches = append(matches, strings.TrimSpace(line))
				break
			}
		}
	}

	return matches
}
