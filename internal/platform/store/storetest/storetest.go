// Package storetest provides an in-memory store.DB for service tests
//
// It has no SQL engine. Fake repos bound to its queriers stage writes with
// OnCommit so a rolled back or failed commit leaves nothing visible
package storetest

import (
	"context"
	"errors"
	"sync"

	"spedicija/internal/platform/store"
)

// ErrNoSQL is returned by Query and QueryRow; bind fake repos instead
var ErrNoSQL = errors.New("storetest: no sql engine")

// DB is an in-memory store.DB that counts connections and transactions
type DB struct {
	mu sync.Mutex

	// FailAcquire makes Acquire fail before fn runs
	FailAcquire error
	// FailCommit makes every commit fail after fn succeeded
	FailCommit error

	nextID     int
	open       int
	maxOpen    int
	acquired   int
	released   int
	commits    int
	rollbacks  int
	statements []string
}

var _ store.DB = (*DB)(nil)

// Stats is a snapshot of DB counters
type Stats struct {
	Acquired, Released, MaxOpen, Commits, Rollbacks int
}

// Stats returns the current counters
func (d *DB) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		Acquired:  d.acquired,
		Released:  d.released,
		MaxOpen:   d.maxOpen,
		Commits:   d.commits,
		Rollbacks: d.rollbacks,
	}
}

// Statements returns every Exec'd statement in order
func (d *DB) Statements() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.statements...)
}

// Acquire implements store.Pool; the connection is released on every exit path
func (d *DB) Acquire(ctx context.Context, fn func(c store.TxRunner) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	if d.FailAcquire != nil {
		err := d.FailAcquire
		d.mu.Unlock()
		return err
	}
	d.nextID++
	id := d.nextID
	d.acquired++
	d.open++
	if d.open > d.maxOpen {
		d.maxOpen = d.open
	}
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.released++
		d.open--
		d.mu.Unlock()
	}()
	return fn(&Conn{db: d, id: id})
}

// Tx implements store.TxRunner on a pool level connection (id 0)
func (d *DB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return d.tx(ctx, 0, fn)
}

// Exec implements store.RowQuerier
func (d *DB) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	return d.exec(sql)
}

// Query implements store.RowQuerier
func (d *DB) Query(context.Context, string, ...any) (store.Rows, error) { return nil, ErrNoSQL }

// QueryRow implements store.RowQuerier
func (d *DB) QueryRow(context.Context, string, ...any) store.Row { return errRow{} }

func (d *DB) exec(sql string) (store.CommandTag, error) {
	d.mu.Lock()
	d.statements = append(d.statements, sql)
	d.mu.Unlock()
	return Tag(0), nil
}

func (d *DB) tx(_ context.Context, conn int, fn func(q store.RowQuerier) error) error {
	t := &Tx{db: d, conn: conn}
	if err := fn(t); err != nil {
		d.finish(false)
		return err
	}
	d.mu.Lock()
	failed := d.FailCommit
	d.mu.Unlock()
	if failed != nil {
		d.finish(false)
		return failed
	}
	d.finish(true)
	for _, h := range t.hooks {
		h()
	}
	return nil
}

func (d *DB) finish(committed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if committed {
		d.commits++
	} else {
		d.rollbacks++
	}
}

// Conn is one acquired connection
type Conn struct {
	db *DB
	id int
}

// ID identifies the connection; pool level queriers report 0
func (c *Conn) ID() int { return c.id }

// Tx implements store.TxRunner
func (c *Conn) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return c.db.tx(ctx, c.id, fn)
}

// Exec implements store.RowQuerier
func (c *Conn) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	return c.db.exec(sql)
}

// Query implements store.RowQuerier
func (c *Conn) Query(context.Context, string, ...any) (store.Rows, error) { return nil, ErrNoSQL }

// QueryRow implements store.RowQuerier
func (c *Conn) QueryRow(context.Context, string, ...any) store.Row { return errRow{} }

// Tx is an open transaction
type Tx struct {
	db    *DB
	conn  int
	hooks []func()
}

// Exec implements store.RowQuerier
func (t *Tx) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	return t.db.exec(sql)
}

// Query implements store.RowQuerier
func (t *Tx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, ErrNoSQL }

// QueryRow implements store.RowQuerier
func (t *Tx) QueryRow(context.Context, string, ...any) store.Row { return errRow{} }

// OnCommit runs fn when q's transaction commits, or right away outside a transaction
func OnCommit(q store.RowQuerier, fn func()) {
	if t, ok := q.(*Tx); ok {
		t.hooks = append(t.hooks, fn)
		return
	}
	fn()
}

// ConnID reports which acquired connection q belongs to, 0 for the pool
func ConnID(q store.RowQuerier) int {
	switch v := q.(type) {
	case *Tx:
		return v.conn
	case *Conn:
		return v.id
	default:
		return 0
	}
}

// Tag is a fixed CommandTag
type Tag int64

// String implements store.CommandTag
func (t Tag) String() string { return "" }

// RowsAffected implements store.CommandTag
func (t Tag) RowsAffected() int64 { return int64(t) }

type errRow struct{}

func (errRow) Scan(...any) error { return ErrNoSQL }
