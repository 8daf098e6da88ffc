package analytics

import "unicode/utf8"

// Column sizes of the analytics tables, in characters.
const (
	maxTypeLen     = 64
	maxTagLen      = 64
	maxLanguageLen = 32
	maxIDLen       = 255
	maxTitleLen    = 255
	maxTextLen     = 255
	maxPathLen     = 512
	maxClassLen    = 512
	maxAgentLen    = 512
	maxURLLen      = 1024
)

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
