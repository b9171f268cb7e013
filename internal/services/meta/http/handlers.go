// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"spedicija/internal/core/model"
	"spedicija/internal/core/version"
	"spedicija/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// ModelInfo reports the loaded model
type ModelInfo interface {
	Info() model.Info
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Model       ModelInfo
	// Optional lists checks whose absence does not degrade readiness
	Optional map[string]bool
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/model", h.model)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"spedicija-api"`
	Started string `json:"started" example:"2026-03-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
	Now     string `json:"now"     example:"2026-03-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-03T13:05:00Z"`
}

// ModelResponse reports the serving model and build
type ModelResponse struct {
	Model model.Info        `json:"model"`
	Build version.BuildInfo `json:"build"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	checks := []ReadyCheck{check("pg", h.deps.PG), check("ch", h.deps.CH)}
	overall := "ok"
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			overall = "fail"
		case c.Status != "ok" && !h.deps.Optional[c.Name] && overall == "ok":
			overall = "degraded"
		}
	}

	resp := ReadyResponse{Status: overall, Checks: checks, Now: time.Now().UTC().Format(time.RFC3339)}
	if overall == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: resp}, nil
	}
	return resp, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/model Meta metaModel
// @Summary Serving model and build
// @Tags Meta
// @Produce json
// @Success 200 {object} ModelResponse
// @Router /meta/model [get]
func (h *handlers) model(_ *http.Request) (any, error) {
	var info model.Info
	if h.deps.Model != nil {
		info = h.deps.Model.Info()
	}
	return ModelResponse{Model: info, Build: version.Info()}, nil
}
