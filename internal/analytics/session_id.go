package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const sessionSuffixLen = 9

// NewSessionID returns "session_<unix-ms>_<suffix>" with a random
// lowercase alphanumeric suffix.
func NewSessionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:sessionSuffixLen]
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}

// ValidSessionID reports whether id has the shape produced by NewSessionID.
func ValidSessionID(id string) bool {
	parts := strings.Split(id, "_")
	if len(parts) != 3 || parts[0] != "session" || len(parts[2]) != sessionSuffixLen {
		return false
	}
	for _, r := range parts[1] {
		if r < '0' || r > '9' {
			return false
		}
	}
	for _, r := range parts[2] {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z') {
			return false
		}
	}
	return parts[1] != ""
}
