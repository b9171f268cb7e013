package middleware

// thin adapters over chi middleware so callers never import chi directly

import (
	"compress/flate"
	"net/http"
	"time"

	pnet "spedicija/internal/platform/net"
	pstrings "spedicija/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID attaches or propagates X-Request-ID and stores it on context
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP sets RemoteAddr to the upstream IP based on X-Forwarded-For headers
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache sets headers to disable client and proxy caching
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress wraps chi's compressor. level usually flate.DefaultCompression or flate.BestSpeed
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return func(next http.Handler) http.Handler { return c.Handler(next) }
}

// ThrottleBacklog limits concurrency with a backlog and wait timeout
// 0 limit disables throttling
func ThrottleBacklog(limit, backlog int, ttl time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return chimw.ThrottleBacklog(limit, backlog, ttl)
}

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors with defaults that let browsers send the api key header
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(
			o.AllowedHeaders,
			[]string{
				"Accept",
				"Content-Type",
				"X-Request-ID",
				pnet.APIKeyHeader,
			},
		),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Defaults is the stack every api router starts with
// order matters: ids first so the access log and panic envelope can see them
// trustProxy lets X-Forwarded-For and X-Real-IP replace the peer address
func Defaults(timeout time.Duration, trustProxy bool) []func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	var stack []func(http.Handler) http.Handler
	if trustProxy {
		stack = append(stack, RealIP())
	}
	return append(stack,
		RequestID(),
		RequestContext(),
		RecoverJSON,
		Timeout(timeout),
		Compress(flate.DefaultCompression),
		NoCache(),
	)
}
