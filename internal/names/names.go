// Package names guesses a candidate's display name from resume text.
package names

import (
	"strings"
	"unicode"
)

// Unknown is returned when no line looks like a name.
const Unknown = "Unknown"

// Extract returns the first trimmed line that has at least two words and
// consists of ASCII letters and whitespace only. It is a heuristic: headings
// such as "professional summary" qualify too.
func Extract(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 1 || len(strings.Fields(line)) < 2 {
			continue
		}
		if lettersAndSpaces(line) {
			return line
		}
	}
	return Unknown
}

func lettersAndSpaces(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
