package util

import (
	"strings"
	"testing"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"one word", "hello", 1},
		{"under a minute", strings.Repeat("word ", 199), 1},
		{"exactly one minute", strings.Repeat("word ", 200), 1},
		{"just over a minute", strings.Repeat("word ", 201), 2},
		{"five minutes", strings.Repeat("word ", 1000), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingTime(tt.content); got != tt.want {
				t.Errorf("ReadingTime() = %d, want %d", got, tt.want)
			}
		})
	}
}
