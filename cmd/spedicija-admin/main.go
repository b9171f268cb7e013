package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spedicija/internal/cli"
	"spedicija/internal/platform/config"
	"spedicija/internal/platform/logger"
	"spedicija/internal/platform/store"
	auditdom "spedicija/internal/services/audit/domain"
	auditrepo "spedicija/internal/services/audit/repo"
	auditsvc "spedicija/internal/services/audit/service"
	keysdom "spedicija/internal/services/keys/domain"
	keysrepo "spedicija/internal/services/keys/repo"
	keyssvc "spedicija/internal/services/keys/service"
)

type backend struct {
	st    *store.Store
	keys  *keyssvc.Svc
	audit *auditsvc.Svc
}

func (b *backend) Keys() keysdom.AdminPort    { return b.keys }
func (b *backend) Audit() auditdom.ReaderPort { return b.audit }

func (b *backend) Close() {
	if err := b.st.Close(context.Background()); err != nil {
		logger.Get().Error().Err(err).Msg("failed to close store")
	}
}

// open connects to postgres only; the admin tool never touches the clickhouse mirror
func open(ctx context.Context) (cli.Backend, error) {
	root := config.New()
	cfg := store.ConfigFromEnv(root, "spedicija-admin")
	cfg.CH.Enabled = false

	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		return nil, err
	}
	if st.PG == nil {
		return nil, fmt.Errorf("postgres is disabled (SERVICE_PGSQL_ENABLED=false)")
	}
	return &backend{
		st:    st,
		keys:  keyssvc.New(st.PG, keysrepo.NewPG(), keyssvc.Config{QueryTimeout: cfg.PG.QueryTimeout}),
		audit: auditsvc.New(st.PG, auditrepo.NewPG(), auditsvc.Config{QueryTimeout: cfg.PG.QueryTimeout}, nil),
	}, nil
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRoot(open).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
