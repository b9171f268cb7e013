package httpkit

import (
	"net/http"
	"time"

	"spedicija/internal/platform/config"
	"spedicija/internal/platform/metrics"
	"spedicija/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout time.Duration
	SlowLog time.Duration
	CORS    middleware.CORSOptions
	Metrics *metrics.Metrics

	// TrustProxy takes the client address from forwarding headers
	TrustProxy bool

	// MaxInflight caps concurrent requests, 0 disables
	MaxInflight int
	Backlog     int
	BacklogWait time.Duration
}

// StackOptionsFromEnv reads CORE_API_* knobs from cfg
func StackOptionsFromEnv(cfg config.Conf) StackOptions {
	api := cfg.Prefix("CORE_API_")
	return StackOptions{
		Timeout: api.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowLog: api.MayDuration("SLOW_LOG", 500*time.Millisecond),
		CORS: middleware.CORSOptions{
			AllowedOrigins: api.MayCSV("CORS_ORIGINS", nil),
			MaxAge:         api.MayInt("CORS_MAX_AGE", 300),
		},
		TrustProxy:  api.MayBool("TRUST_PROXY", false),
		MaxInflight: api.MayInt("MAX_INFLIGHT", 0),
		Backlog:     api.MayInt("BACKLOG", 0),
		BacklogWait: api.MayDuration("BACKLOG_WAIT", 5*time.Second),
	}
}

// CommonStack returns the baseline middleware for the api router
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := middleware.Defaults(o.Timeout, o.TrustProxy)
	return append(stack,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowLog}),
		o.Metrics.Middleware,
		middleware.CORS(o.CORS),
		middleware.ThrottleBacklog(o.MaxInflight, o.Backlog, o.BacklogWait),
	)
}
