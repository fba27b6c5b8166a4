package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{
			name:    "short content unchanged",
			content: "A short note.",
			maxLen:  50,
			want:    "A short note.",
		},
		{
			name:    "truncates on word boundary",
			content: "Reclaimed denim is the backbone of the collection",
			maxLen:  20,
			want:    "Reclaimed denim is…",
		},
		{
			name:    "empty content",
			content: "",
			maxLen:  10,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.content, tt.maxLen)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExcerpt_NeverExceedsLimitByMuchAndEndsClean(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := Excerpt(long, 40)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 41)
}
