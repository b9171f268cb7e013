// Package module wires the api key service; it exposes ports and no routes
package module

import (
	"spedicija/internal/modkit"
	"spedicija/internal/modkit/httpkit"
	"spedicija/internal/services/keys/domain"
	"spedicija/internal/services/keys/repo"
	"spedicija/internal/services/keys/service"
)

// Ports exposed by the keys module
type Ports struct {
	Auth  domain.AuthPort
	Admin domain.AdminPort
}

// Module implements modkit.Module
type Module struct {
	b     modkit.Built
	ports Ports
}

// New constructs the keys module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("keys")}, opts...)...)
	svc := service.New(deps.PG, repo.NewPG(), service.Config{QueryTimeout: deps.QueryTimeout})
	return &Module{b: b, ports: Ports{Auth: svc, Admin: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
