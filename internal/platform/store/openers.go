package store

import (
	"context"
	"fmt"
	"time"

	chx "spedicija/internal/platform/store/ch"
	"spedicija/internal/platform/store/pg"
)

// backoff knobs, vars so tests can shrink them
var (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (DB, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	// ping the pool directly so boot probes stay out of the sql trace
	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx)
		cancel()

		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < backoffCeiling {
			backoff = min(backoff*2, backoffCeiling)
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: cfg.CH.ClientName,
		ClientTag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
