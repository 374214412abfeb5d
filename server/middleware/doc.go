// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides HTTP request handling functionality for tavernd.

Middleware registration order is centralized in the router package's
RegisterMiddleware function.
*/
package middleware
