// Package module wires the inference orchestrator and its routes
package module

import (
	"spedicija/internal/modkit"
	"spedicija/internal/modkit/httpkit"
	auditdom "spedicija/internal/services/audit/domain"
	"spedicija/internal/services/gateway/domain"
	gatewayhttp "spedicija/internal/services/gateway/http"
	"spedicija/internal/services/gateway/service"
	infdom "spedicija/internal/services/inference/domain"
	keysdom "spedicija/internal/services/keys/domain"
)

// Ports this module needs from the keys, inference and audit modules
type Ports struct {
	Auth   keysdom.AuthPort
	Engine infdom.EnginePort
	Audit  auditdom.RecorderPort
}

// Module implements modkit.Module
type Module struct {
	b   modkit.Built
	svc domain.ServicePort
}

// New constructs the gateway module; inject Ports with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("gateway")}, opts...)...)
	p, ok := b.Ports.(Ports)
	if !ok {
		panic("gateway module requires modkit.WithPorts(gateway.Ports{...})")
	}
	svc := service.New(service.Deps{
		Pool:    deps.PG,
		Auth:    p.Auth,
		Engine:  p.Engine,
		Audit:   p.Audit,
		Metrics: deps.Metrics,
	})
	return &Module{b: b, svc: svc}
}

// MountRoutes satisfies modkit.Module; routes sit at the root
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { gatewayhttp.Register(rr, m.svc) })
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.svc }
