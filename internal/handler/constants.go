// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site, the
// auth flow and the admin area.
package handler

// Route constants used by handlers for redirects.
const (
	RouteRoot  = "/"
	RouteBlog  = "/blog"
	RouteLogin = "/auth/login"

	RouteAdmin            = "/admin"
	RouteAdminPosts       = "/admin/posts"
	RouteAdminPages       = "/admin/pages"
	RouteAdminCategories  = "/admin/categories"
	RouteAdminBanners     = "/admin/banners"
	RouteAdminMenus       = "/admin/menus"
	RouteAdminCollections = "/admin/collections"
	RouteAdminPosters     = "/admin/posters"
	RouteAdminUsers       = "/admin/users"
	RouteAdminSettings    = "/admin/settings"
	RouteAdminSubscribers = "/admin/subscribers"
	RouteAdminMessages    = "/admin/messages"
	RouteAdminEvents      = "/admin/events"
)
