package extract

import "strings"

const (
	softHyphen = "\u00ad"
	nbsp       = "\u00a0"
)

var textCleaner = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	softHyphen, "",
	nbsp, " ",
)

// CleanText flattens a text fragment onto one line: newlines and
// non-breaking spaces become spaces, soft hyphens vanish, ends are trimmed
func CleanText(s string) string {
	return strings.TrimSpace(textCleaner.Replace(s))
}

// CollapseSpace reduces runs of whitespace to a single space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsAny reports whether s contains one of the needles
func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// hasAnyPrefix reports whether s starts with one of the prefixes
func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
