// Package module wires the audit service and its optional clickhouse mirror
package module

import (
	"context"

	"spedicija/internal/modkit"
	"spedicija/internal/modkit/httpkit"
	"spedicija/internal/services/audit/domain"
	"spedicija/internal/services/audit/repo"
	"spedicija/internal/services/audit/service"
)

// Ports exposed by the audit module
type Ports struct {
	Recorder domain.RecorderPort
	Reader   domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	b      modkit.Built
	ports  Ports
	mirror *service.Mirror
}

// New constructs the audit module; the mirror is on when deps.CH is set
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("audit")}, opts...)...)
	o := FromConfig(deps.Cfg)

	m := &Module{b: b}
	var mirror domain.Mirror
	if deps.CH != nil {
		m.mirror = service.NewMirror(deps.CH, o.Mirror, deps.Metrics)
		mirror = m.mirror
	}
	svc := service.New(deps.PG, repo.NewPG(), service.Config{
		QueryTimeout: deps.QueryTimeout,
		ListLimit:    o.ListLimit,
	}, mirror)

	m.ports = Ports{Recorder: svc, Reader: svc}
	return m
}

// Run ships mirrored entries until ctx ends; without a mirror it returns at once
func (m *Module) Run(ctx context.Context) {
	if m.mirror != nil {
		m.mirror.Run(ctx)
	}
}

// Close flushes the mirror
func (m *Module) Close() {
	if m.mirror != nil {
		m.mirror.Close()
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
