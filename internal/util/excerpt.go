package util

import "strings"

// Excerpt returns the content truncated to at most maxLen characters,
// cut at a word boundary with an ellipsis appended.
func Excerpt(content string, maxLen int) string {
	content = strings.TrimSpace(content)
	if len(content) <= maxLen {
		return content
	}

	cut := content[:maxLen]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
