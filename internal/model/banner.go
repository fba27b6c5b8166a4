// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Banner positions
const (
	BannerPositionHeader  = "header"
	BannerPositionFooter  = "footer"
	BannerPositionSidebar = "sidebar"
	BannerPositionPopup   = "popup"
)

// ValidBannerPositions contains all valid banner positions.
var ValidBannerPositions = []string{
	BannerPositionHeader, BannerPositionFooter, BannerPositionSidebar, BannerPositionPopup,
}

// IsValidBannerPosition checks if a position is valid.
func IsValidBannerPosition(position string) bool {
	for _, p := range ValidBannerPositions {
		if p == position {
			return true
		}
	}
	return false
}
