package pg

import (
	"context"
	"strings"

	"spedicija/internal/platform/logger"
	pnet "spedicija/internal/platform/net"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
// argument values are never carried: they hold api keys and password hashes
type QueryEvent struct {
	SQL       string
	NArgs     int
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives query events from the store adapters
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer returns a tracer that prints every statement when LogSQL is on,
// independent of the process-wide root level
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	if ev.Err != nil {
		evt = z.log.Error().Err(ev.Err)
	}

	if reqID := pnet.RequestID(ctx); reqID != "" {
		evt = evt.Str("request_id", reqID)
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Int("nargs", ev.NArgs).
		Msg("pg query")
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
