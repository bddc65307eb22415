package internal

// Version is the vocabtrans release version
const Version = "0.3.0"

// Truncate shortens s to at most n runes, appending "..." when something was cut.
// Used for log snippets of long definitions.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
