// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/tavernd/tavernd/core/userdata"
	"codeberg.org/tavernd/tavernd/server/middleware"
	"codeberg.org/tavernd/tavernd/server/routes"
)

// fileRoutes binds each served URL prefix to the logical directory it
// streams from. The prefixes are disjoint, so registration order carries
// no meaning.
var fileRoutes = []struct {
	prefix string
	key    userdata.Key
}{
	{"/backgrounds/", userdata.KeyBackgrounds},
	{"/characters/", userdata.KeyCharacters},
	{"/User Avatars/", userdata.KeyAvatars},
	{"/assets/", userdata.KeyAssets},
	{"/user/images/", userdata.KeyUserImages},
	{"/user/files/", userdata.KeyFiles},
	{"/scripts/extensions/third-party/", userdata.KeyExtensions},
}

// DefineRoutes sets up all the routes for the application using our custom Router.
//
// Patterns ending in "/" are prefix matches; each file route strips its
// prefix and hands the remainder to the user-file handler as a relative
// file path.
func (router *Router) DefineRoutes() {
	for _, route := range fileRoutes {
		router.Handle(
			"GET "+route.prefix,
			middleware.CatchError(StripPrefix(route.prefix, routes.ServeUserFile(route.key))),
		)
	}
}
