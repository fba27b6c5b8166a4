package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "with punctuation",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "with numbers",
			input:    "Collection 2026",
			expected: "collection-2026",
		},
		{
			name:     "with accents",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "with multiple spaces",
			input:    "Hello   World",
			expected: "hello-world",
		},
		{
			name:     "punctuation runs collapse",
			input:    "Behind the Scenes: Our Design Process",
			expected: "behind-the-scenes-our-design-process",
		},
		{
			name:     "leading and trailing junk",
			input:    "  --Hello World--  ",
			expected: "hello-world",
		},
		{
			name:     "all special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugifyOutputIsAlwaysValid(t *testing.T) {
	inputs := []string{
		"The Future of Sustainable Fashion",
		"RE_CLAIM.D — Fall/Winter '26!!",
		"   spaced    out   ",
		"100% recycled",
		"a",
	}
	for _, in := range inputs {
		got := Slugify(in)
		if got != "" && !IsValidSlug(got) {
			t.Errorf("Slugify(%q) = %q, which is not a valid slug", in, got)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"hello-world", "a", "abc-123", "2026"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-hello", "hello-", "hello--world", "Hello", "hello world", "héllo"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}
