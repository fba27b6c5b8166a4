// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "strings"

// wordsPerMinute is the reading speed used for reading-time estimates.
const wordsPerMinute = 200

// ReadingTime estimates the reading time of content in whole minutes,
// rounded up. Empty content reads in zero minutes; any non-empty content
// takes at least one.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
