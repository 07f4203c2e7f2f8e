// Package middleware provides HTTP middleware for the ABI codec HTTP
// API, mirroring the teacher's walletserver/middleware/logger.go.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// RequestID stamps every request with a google/uuid request id, carried
// both in the response header and the request context for downstream
// handlers and loggers to pick up.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request id RequestID stamped onto ctx,
// or "" if none is present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Logger logs method, path, status-adjacent latency and request id for
// every request, mirroring the teacher's Logger middleware but adding the
// structured fields SPEC_FULL.md names (function, input_id, cell_hash are
// logged by the service layer itself; this middleware logs the envelope).
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
			"request_id": RequestIDFromContext(r.Context()),
		}).Info("handled request")
	})
}
