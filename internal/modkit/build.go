package modkit

import (
	"net/http"

	"spedicija/internal/modkit/httpkit"
	pstrings "spedicija/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
	// Register attaches extra endpoints after the module's own
	Register func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   pstrings.Prefix(c.prefix),
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount mounts register under b.Prefix with b.Mw applied
// an empty prefix mounts at the parent's root in its own group
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	mount := func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		register(rr)
		b.Register(rr)
	}
	if b.Prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(b.Prefix, mount)
}
