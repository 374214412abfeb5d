// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/tavernd/tavernd/config"
	"codeberg.org/tavernd/tavernd/core/audit"
	"codeberg.org/tavernd/tavernd/server/request_context"
)

// CatchError wraps HTTP handlers that return an error, providing centralized
// error handling, response buffering, and request logging.
//
// It operates as follows:
//  1. It times the request for logging purposes.
//  2. It wraps the execution of the given handler, which has the signature
//     `func(w http.ResponseWriter, r *http.Request) error`. The handler's
//     output is buffered using an httptest.ResponseRecorder.
//  3. Any error returned by the handler is stored in the request context.
//
// After the handler runs, it decides on the final response:
//   - If the handler returned an error, the buffered response is discarded
//     and a bare 404 with an empty body is written. Every failure is
//     reported identically regardless of cause; the cause survives only in
//     the operational log.
//   - Otherwise the buffered response is written to the client as-is.
//
// Finally, it logs the completed request details (status, duration, error,
// etc.) via the audit package.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToUser,
			RequestID:   ctx.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
		}

		span.Begin(r.Context())
		defer span.End()

		recorder := httptest.NewRecorder()

		// Execute the handler, capturing its output and any returned error.
		err := handler(recorder, r)

		ctx.RequestError = err

		if err != nil {
			// Discard whatever the handler buffered and answer with the
			// uniform not-found status, empty body.
			ctx.StatusCode = http.StatusNotFound
			w.WriteHeader(ctx.StatusCode)
			recorder.Body.Reset()
		} else {
			if recorder.Code == 0 {
				recorder.Code = http.StatusOK
			}

			ctx.StatusCode = recorder.Code
			span.BodySize = recorder.Body.Len()
			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.StatusCode = ctx.StatusCode
		span.Error = ctx.RequestError

		// Log the served request if not excluded.
		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}
