// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package audit provides the operational log: zerolog setup plus a small
// span type that times and records each served request.
package audit

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog/log"
)

// Span represents an HTTP request in flight.
type Span struct {
	// set automatically by Begin/End
	start    time.Time
	duration time.Duration
	metric   *servertiming.Metric

	Destination TrafficDestination
	RequestID   string
	Method      string
	URL         string
	StatusCode  int
	BodySize    int
	Error       error
}

// TrafficDestination describes the logical destination of an HTTP request.
type TrafficDestination string

// Constants for traffic destinations.
const (
	ToUser    TrafficDestination = "user"
	ToStorage TrafficDestination = "storage"
)

func (span Span) serverTimingName() string {
	// base64 without trailing '=' to match the Server-Timing token syntax
	return string(span.Destination) + "$" + span.Method + "$" + base64.RawURLEncoding.EncodeToString([]byte(span.URL))
}

// Begin starts timing the span and registers a Server-Timing metric when
// the middleware put one on the context.
func (span *Span) Begin(ctx context.Context) {
	span.start = time.Now()

	if timing := servertiming.FromContext(ctx); timing != nil {
		span.metric = timing.NewMetric(span.serverTimingName())
		span.metric.Extra = map[string]string{
			"start": strconv.FormatFloat(float64(span.start.UnixNano())/float64(time.Millisecond), 'f', -1, 64),
		}
	}
}

// End stops the span's clock. Safe to call more than once; only the first
// call records a duration.
func (span *Span) End() {
	if span.duration == 0 && !span.start.IsZero() {
		span.duration = time.Since(span.start)

		if span.metric != nil {
			span.metric.Duration = span.duration
		}
	}
}

// Log writes the span to the operational log.
func (span Span) Log() {
	event := log.Debug()

	event.Str("sys", "http")
	event.Str("method", span.Method)
	event.Str("url", span.URL)
	event.Int("status_code", span.StatusCode)
	event.Str("len", humanizeSize(span.BodySize))
	event.Dur("dur", span.duration)
	event.Str("destination", string(span.Destination))
	event.Str("request_id", span.RequestID)

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	if x < bytesInKB {
		return strconv.Itoa(x)
	}

	if x < bytesInMB {
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	}

	if x < bytesInGB {
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}
