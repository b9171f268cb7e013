// Package module wires the registrar and its route
package module

import (
	"spedicija/internal/core/secret"
	"spedicija/internal/modkit"
	"spedicija/internal/modkit/httpkit"
	"spedicija/internal/services/ident/domain"
	identhttp "spedicija/internal/services/ident/http"
	"spedicija/internal/services/ident/repo"
	"spedicija/internal/services/ident/service"
)

// Module implements modkit.Module
type Module struct {
	b   modkit.Built
	svc domain.ServicePort
}

// New constructs the ident module; a nil hasher uses bcrypt at the default cost
func New(deps modkit.Deps, h secret.Hasher, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ident")}, opts...)...)
	if h == nil {
		h = secret.NewBcrypt(0)
	}
	return &Module{b: b, svc: service.New(deps.PG, repo.NewPG(), h, deps.Metrics)}
}

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { identhttp.Register(rr, m.svc) })
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.svc }
