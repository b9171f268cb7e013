// @title         Spedicija API
// @version       0.1.0
// @description   Authenticated cost and travel time predictions for freight companies

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"spedicija/internal/core/model"
	"spedicija/internal/modkit/repokit"
	"spedicija/internal/platform/config"
	"spedicija/internal/platform/logger"
	"spedicija/internal/platform/metrics"
	phttp "spedicija/internal/platform/net/http"
	"spedicija/internal/platform/store"

	"spedicija/internal/services/api"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Get().Fatal().Err(err).Msg("load .env")
	}

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the model is loaded once and shared read only by every request
	modelPath := root.Prefix("MODEL_").MustString("PATH")
	m, err := model.Load(modelPath)
	if err != nil {
		l.Fatal().Err(err).Str("path", modelPath).Msg("model load failed")
	}
	info := m.Info()
	l.Info().Str("model", info.Name).Str("version", info.Version).Int("params", info.Params).Msg("model loaded")

	// open the platform store (postgres, optional clickhouse mirror)
	stCfg := store.ConfigFromEnv(root, "spedicija-api")
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_ADDR and CORE_API_*_TIMEOUT)
	srv := phttp.NewServer(apiCfg)

	a := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Metrics:        metrics.New(),
			Model:          m,
			QueryTimeout:   stCfg.PG.QueryTimeout,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	go a.Run(ctx)
	defer a.Close()

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
