// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that enforces per-client rate limiting for
HTTP requests.

Clients are grouped by their remote IP address, each with its own token
bucket. Limiters that have not been touched for a while are dropped during
periodic cleanup so the map cannot grow without bound.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"codeberg.org/tavernd/tavernd/config"
)

const (
	// LimiterExpiryDuration is how long to keep limiters in memory before cleanup.
	LimiterExpiryDuration = time.Hour
	// CleanupInterval is the interval between limiter cleanup runs.
	CleanupInterval = 5 * time.Minute
)

var (
	timeNow = time.Now // Wrapper for time.Now, which allows us to mock it in tests.

	mu       sync.Mutex
	limiters map[string]*limiterWrapper
	stopOnce sync.Once
	stop     chan struct{}
)

// limiterWrapper holds a rate limiter and its last access time.
type limiterWrapper struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Init prepares the limiter state and starts the cleanup loop.
//
// A later Init begins a fresh lifecycle, so Init/Fini pairs may repeat
// within one process.
func Init() {
	mu.Lock()
	limiters = make(map[string]*limiterWrapper)
	mu.Unlock()

	stop = make(chan struct{})
	stopOnce = sync.Once{}

	go cleanupLoop()
}

// Fini stops the cleanup loop. Safe to call when Init never ran.
func Fini() {
	if stop == nil {
		return
	}

	stopOnce.Do(func() { close(stop) })
}

// Evaluate is the entrypoint to the limiter middleware.
//
// Requests from clients that exhausted their token bucket receive a bare
// 429 status.
func Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if !allow(clientKey(r)) {
		w.WriteHeader(http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

// clientKey groups requests by remote IP. When RemoteAddr has no port
// (some proxies, tests), the whole address is the key.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func allow(key string) bool {
	mu.Lock()
	defer mu.Unlock()

	if limiters == nil {
		limiters = make(map[string]*limiterWrapper)
	}

	wrapper, ok := limiters[key]
	if !ok {
		wrapper = &limiterWrapper{
			limiter: rate.NewLimiter(
				rate.Limit(config.Global.Limiter.RequestsPerSecond),
				config.Global.Limiter.Burst,
			),
		}
		limiters[key] = wrapper
	}

	wrapper.lastAccess = timeNow()

	return wrapper.limiter.Allow()
}

func cleanupLoop() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleanup()
		case <-stop:
			return
		}
	}
}

// cleanup drops limiters that have been idle past their expiry.
func cleanup() {
	mu.Lock()
	defer mu.Unlock()

	cutoff := timeNow().Add(-LimiterExpiryDuration)

	for key, wrapper := range limiters {
		if wrapper.lastAccess.Before(cutoff) {
			delete(limiters, key)
		}
	}
}
