// Package net provides request scoped helpers shared by transports
package net

import (
	"context"
	stdnet "net"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// APIKeyHeader carries the caller credential on protected routes
const APIKeyHeader = "x-api-key"

// WithRequest annotates context with a request id readable by RequestID
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ClientIP returns the caller address without a port
// RemoteAddr is the TCP peer unless the stack was built with TrustProxy
func ClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := stdnet.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// APIKey returns the credential header exactly as sent, "" when absent
func APIKey(r *http.Request) string {
	return r.Header.Get(APIKeyHeader)
}
