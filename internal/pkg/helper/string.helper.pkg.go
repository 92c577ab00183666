package helper

import (
	"strings"
)

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

// IsBlank reports whether s is empty after trimming spaces.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
