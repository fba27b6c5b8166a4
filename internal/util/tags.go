// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "strings"

// ParseTagList splits a comma-separated tag string into clean tag names.
// Whitespace is trimmed, empty tokens are dropped, and input order is
// preserved. Names that slugify identically are collapsed to the first
// spelling so the association set stays unambiguous.
func ParseTagList(s string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, token := range strings.Split(s, ",") {
		name := strings.TrimSpace(token)
		if name == "" {
			continue
		}
		slug := Slugify(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		names = append(names, name)
	}

	return names
}
