// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// ValidPostStatuses contains all valid post statuses.
var ValidPostStatuses = []string{PostStatusDraft, PostStatusPublished, PostStatusArchived}

// IsValidPostStatus checks if a status is a valid post status.
func IsValidPostStatus(status string) bool {
	for _, s := range ValidPostStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Page statuses. Pages have no archived state.
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
)

// ValidPageStatuses contains all valid page statuses.
var ValidPageStatuses = []string{PageStatusDraft, PageStatusPublished}

// Page templates
const (
	PageTemplateDefault   = "default"
	PageTemplateHero      = "hero"
	PageTemplatePortfolio = "portfolio"
	PageTemplateContact   = "contact"
)

// ValidPageTemplates contains all valid page templates.
var ValidPageTemplates = []string{
	PageTemplateDefault, PageTemplateHero, PageTemplatePortfolio, PageTemplateContact,
}
