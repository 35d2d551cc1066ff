package matcher

import "strings"

// NormalizeName canonicalizes a free-text name for comparison: lowercase,
// whitespace-trimmed, internal runs of double spaces collapsed. An absent or
// blank name yields "" which downstream treats as "no usable name" and never
// fuzzy-matches.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for strings.Contains(n, "  ") {
		n = strings.ReplaceAll(n, "  ", " ")
	}
	return n
}
