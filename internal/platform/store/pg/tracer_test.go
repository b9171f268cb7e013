package pg

import (
	"bytes"
	"context"
	"errors"
	"testing"

	pnet "spedicija/internal/platform/net"
	kit "spedicija/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestTracerLogsCompactSQLWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	ctx := pnet.WithRequest(context.Background(), "req-9")
	tr.OnQuery(ctx, QueryEvent{
		SQL:       "SELECT firma\n\tFROM api_keys\n  WHERE api_key = $1",
		NArgs:     1,
		ElapsedUS: 1500,
	})

	out := buf.String()
	kit.MustContain(t, out, `"sql":"SELECT firma FROM api_keys WHERE api_key = $1"`)
	kit.MustContain(t, out, `"nargs":1`)
	kit.MustContain(t, out, `"request_id":"req-9"`)
	kit.MustContain(t, out, `"level":"info"`)
}

func TestTracerLevels(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 1", Slow: true})
	kit.MustContain(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 1", Err: errors.New("boom")})
	kit.MustContain(t, buf.String(), `"level":"error"`)
	kit.MustContain(t, buf.String(), `"error":"boom"`)
}

func TestOpenRejectsBadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "postgres://%zz"}, nil, nil); err == nil {
		t.Fatal("expected parse error")
	}
}
