package services

import (
	"fmt"
	"strings"
)

// Slugify converts a title into a URL-safe slug: lowercased, with every run of
// non-alphanumeric characters collapsed into a single hyphen and no leading or
// trailing hyphens. Returns "" when the title contains nothing usable.
func Slugify(title string) string {
	var result strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && result.Len() > 0 {
				result.WriteByte('-')
			}
			pendingHyphen = false
			result.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return result.String()
}

// SlugWithSuffix returns the slug candidate for a given collision-resolution
// attempt: the base slug itself for attempt 0, then base-1, base-2, ...
func SlugWithSuffix(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}
