// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"spedicija/internal/platform/logger"
	pnet "spedicija/internal/platform/net"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow marks requests taking >= Slow as warn level, 0 disables slow marking
	Slow time.Duration
}

// captureWriter wraps the original ResponseWriter and records status & bytes
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	if n > 0 {
		cw.bytes += n
	}
	return n, err
}

// RequestContext copies the request id assigned by RequestID onto the logger context
// so every logger.C call downstream carries it
func RequestContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := pnet.RequestID(r.Context())
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			next.ServeHTTP(w, r.WithContext(logger.WithRequest(r.Context(), reqID)))
		})
	}
}

// AccessLogZerolog logs method, path, status, elapsed, and bytes written
// the api key header is never logged
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case cw.status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("ip", pnet.ClientIP(r)).
				Int("bytes", cw.bytes).
				Msg("request done")
		})
	}
}
