package store

import (
	"context"
	"errors"
	"time"

	"spedicija/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the query surface shared by pgxpool.Pool, pgx.Conn and pgx.Tx
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// traced implements RowQuerier over any pgxQuerier and emits query events
type traced struct {
	q      pgxQuerier
	tracer pg.QueryTracer
	slowUS int64
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.q.Exec(ctx, sql, args...)
	t.emit(ctx, sql, args, start, err)
	return tag{ct}, err
}

func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.q.Query(ctx, sql, args...)
	t.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := t.q.QueryRow(ctx, sql, args...)
	// emit after Scan so the event carries the scan error
	return row{
		r: r,
		after: func(scanErr error) {
			t.emit(ctx, sql, args, start, scanErr)
		},
	}
}

func (t traced) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	t.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		NArgs:     len(args),
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      t.slowUS >= 0 && elapsedUS >= t.slowUS,
	})
}

// runTx begins on b, hands fn a traced tx querier, and commits
// any error or panic in fn rolls back
func (t traced) runTx(ctx context.Context, b beginner, fn func(q RowQuerier) error) error {
	tx, err := b.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(traced{q: tx, tracer: t.tracer, slowUS: t.slowUS}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// pgAdapter wraps pg.PG and implements DB
type pgAdapter struct {
	traced
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		traced: traced{q: p.Pool, tracer: p.Tracer, slowUS: int64(p.SlowMs) * 1000},
		p:      p,
	}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return a.runTx(ctx, a.p.Pool, fn)
}

// Acquire checks out one connection, runs fn on it, and always releases it
func (a *pgAdapter) Acquire(ctx context.Context, fn func(c TxRunner) error) error {
	conn, err := a.p.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(connRunner{traced: traced{q: conn, tracer: a.tracer, slowUS: a.slowUS}, conn: conn})
}

// connRunner is a TxRunner pinned to one acquired connection
type connRunner struct {
	traced
	conn beginner
}

func (c connRunner) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return c.runTx(ctx, c.conn, fn)
}

// adapters for pgx to our tiny Row/Rows/CommandTag

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct{ r pgx.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { x.r.Close() }
func (x rows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}

// wrap pgconn.CommandTag so we satisfy our CommandTag interface
type tag struct{ t pgconn.CommandTag }

func (t tag) String() string      { return t.t.String() }
func (t tag) RowsAffected() int64 { return t.t.RowsAffected() }
