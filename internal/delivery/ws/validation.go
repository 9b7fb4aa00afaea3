package ws

import (
	"regexp"
	"strings"

	"github.com/danprtma/watchparty/internal/domain"
)

var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	controlCharRegex = regexp.MustCompile(`[\x00-\x1F\x7F]`)
)

// SanitizeUsername cleans a requested display name. Returns "" when
// nothing usable remains, which callers treat as a no-op: the relay
// never stores a blank name.
func SanitizeUsername(name string) string {
	name = strings.TrimSpace(name)

	// Remove HTML tags to prevent XSS in client chat views
	name = htmlTagRegex.ReplaceAllString(name, "")

	// Remove control characters
	name = controlCharRegex.ReplaceAllString(name, "")

	name = strings.TrimSpace(name)

	if runes := []rune(name); len(runes) > domain.MaxUsernameLength {
		name = strings.TrimSpace(string(runes[:domain.MaxUsernameLength]))
	}

	return name
}
