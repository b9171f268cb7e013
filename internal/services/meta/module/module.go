// Package module wires meta endpoints into the API
package module

import (
	"time"

	"spedicija/internal/core/version"
	"spedicija/internal/modkit"
	"spedicija/internal/modkit/httpkit"
	metahttp "spedicija/internal/services/meta/http"
)

// Module implements modkit.Module
type Module struct {
	b         modkit.Built
	deps      metahttp.Deps
	startedAt time.Time
}

// New constructs the meta module; m reports the serving model and may be nil
func New(deps modkit.Deps, m metahttp.ModelInfo, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	started := time.Now()
	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   started,
		Model:       m,
		// the ClickHouse mirror is optional
		Optional: map[string]bool{"ch": true},
	}
	if deps.PG != nil {
		d.PG = deps.PG
	}
	if deps.CH != nil {
		d.CH = deps.CH
	}
	return &Module{b: b, deps: d, startedAt: started}
}

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return nil }
