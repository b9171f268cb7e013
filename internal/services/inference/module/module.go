// Package module wires the inference engine around the model loaded at startup
package module

import (
	"time"

	"spedicija/internal/modkit"
	"spedicija/internal/modkit/httpkit"
	"spedicija/internal/platform/config"
	"spedicija/internal/services/inference/domain"
	"spedicija/internal/services/inference/service"
)

// Ports exposed by the inference module
type Ports struct {
	Engine domain.EnginePort
}

// FromConfig reads INFER_* settings
func FromConfig(cfg config.Conf) service.Config {
	ic := cfg.Prefix("INFER_")
	return service.Config{
		Workers: ic.MayInt("WORKERS", 0),
		Timeout: ic.MayDuration("TIMEOUT", 2*time.Second),
	}
}

// Module implements modkit.Module
type Module struct {
	b     modkit.Built
	ports Ports
}

// New constructs the inference module for a loaded model
func New(deps modkit.Deps, m domain.Predictor, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("inference")}, opts...)...)
	eng := service.New(m, FromConfig(deps.Cfg), deps.Metrics)
	return &Module{b: b, ports: Ports{Engine: eng}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
