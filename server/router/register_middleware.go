// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/tavernd/tavernd/config"
	"codeberg.org/tavernd/tavernd/core/identity"
	"codeberg.org/tavernd/tavernd/server/middleware"
	"codeberg.org/tavernd/tavernd/server/middleware/limiter"
	"codeberg.org/tavernd/tavernd/server/middleware/user_context"
)

// RegisterMiddleware wires the middleware chain around the routes.
func (router *Router) RegisterMiddleware(provider identity.Provider) {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	// needed for everything else
	router.Use(user_context.Attach(provider, config.Global.Template(), config.Global.Storage.DataRoot))

	if config.Global.Limiter.Enabled {
		limiter.Init()

		router.Use(limiter.Evaluate)
	}
}
