// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants and types shared across the
// application: roles, content statuses, banner positions, and event levels.
package model

// Profile roles, ordered by privilege.
const (
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleAuthor     = "author"
	RoleSubscriber = "subscriber"
)

// ValidRoles contains all valid profile roles.
var ValidRoles = []string{RoleAdmin, RoleEditor, RoleAuthor, RoleSubscriber}

// RoleLevel returns a numeric level for the role hierarchy. Higher level
// means more permissions. Unknown roles map to the subscriber level.
func RoleLevel(role string) int {
	switch role {
	case RoleAdmin:
		return 3
	case RoleEditor:
		return 2
	case RoleAuthor:
		return 1
	default:
		return 0
	}
}

// RoleAtLeast reports whether role meets the minimum required role.
// Roles are hierarchical: admin > editor > author > subscriber.
func RoleAtLeast(role, minRole string) bool {
	return RoleLevel(role) >= RoleLevel(minRole)
}

// IsValidRole checks whether the given string is a known role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
