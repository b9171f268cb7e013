// Package api composes the gateway modules onto a router
package api

import (
	"context"
	"time"

	"spedicija/internal/core/secret"
	"spedicija/internal/platform/config"
	"spedicija/internal/platform/logger"
	"spedicija/internal/platform/metrics"
	phttp "spedicija/internal/platform/net/http"
	"spedicija/internal/platform/store"

	"spedicija/internal/modkit"
	"spedicija/internal/modkit/httpkit"
	"spedicija/internal/modkit/module"
	"spedicija/internal/modkit/swaggerkit"

	auditmod "spedicija/internal/services/audit/module"
	gatewaymod "spedicija/internal/services/gateway/module"
	identmod "spedicija/internal/services/ident/module"
	infdom "spedicija/internal/services/inference/domain"
	infmod "spedicija/internal/services/inference/module"
	keysmod "spedicija/internal/services/keys/module"
	metamod "spedicija/internal/services/meta/module"
)

// Options are the API options
type Options struct {
	// Config is the root view; modules read their own prefixes from it
	Config  config.Conf
	Store   *store.Store
	Metrics *metrics.Metrics
	Model   infdom.Predictor
	// QueryTimeout bounds credential and audit statements
	QueryTimeout time.Duration
	// Hasher defaults to bcrypt at IDENT_BCRYPT_COST
	Hasher secret.Hasher

	EnableSwagger  bool
	EnableProfiler bool
}

// API owns the background work started by Mount
type API struct {
	audit *auditmod.Module
}

// Run ships mirrored audit entries until ctx ends
func (a *API) Run(ctx context.Context) { a.audit.Run(ctx) }

// Close flushes what is left of the audit mirror
func (a *API) Close() { a.audit.Close() }

// Mount mounts every module onto r and returns the handle for background work
func Mount(r phttp.Router, opt Options) *API {
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}
	deps := modkit.Deps{
		Cfg:          opt.Config,
		PG:           st.PG,
		CH:           st.CH,
		Metrics:      opt.Metrics,
		QueryTimeout: opt.QueryTimeout,
	}

	hasher := opt.Hasher
	if hasher == nil {
		hasher = secret.NewBcrypt(opt.Config.Prefix("IDENT_").MayInt("BCRYPT_COST", 0))
	}

	keys := keysmod.New(deps)
	audit := auditmod.New(deps)
	inference := infmod.New(deps, opt.Model)

	gateway := gatewaymod.New(deps, modkit.WithPorts(gatewaymod.Ports{
		Auth:   module.MustPortsOf[keysmod.Ports](keys).Auth,
		Engine: module.MustPortsOf[infmod.Ports](inference).Engine,
		Audit:  module.MustPortsOf[auditmod.Ports](audit).Recorder,
	}))

	mods := []module.Module{
		keys,
		audit,
		inference,
		gateway,
		identmod.New(deps, hasher),
		metamod.New(deps, opt.Model),
	}

	stack := httpkit.StackOptionsFromEnv(opt.Config)
	stack.Metrics = opt.Metrics

	var docModel swaggerkit.SpecMutator
	if opt.Model != nil {
		info := opt.Model.Info()
		docModel = swaggerkit.WithModel(info.Name, info.Version)
	}
	swaggerkit.Mount(r, opt.EnableSwagger, docModel)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	r.Group(func(api httpkit.Router) {
		api.Use(httpkit.CommonStack(stack)...)
		for _, m := range mods {
			// register each module's ports under its own name for cross module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	logger.Named("api").Info().Strs("modules", module.Names()).Msg("modules mounted")

	return &API{audit: audit}
}
