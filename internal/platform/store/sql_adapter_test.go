package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"spedicija/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recTracer struct {
	mu  sync.Mutex
	evs []pg.QueryEvent
}

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evs = append(r.evs, ev)
}

type stubRow struct{ err error }

func (s stubRow) Scan(...any) error { return s.err }

// fakeTx satisfies pgx.Tx; unimplemented methods panic through the nil embed
type fakeTx struct {
	pgx.Tx
	execErr    error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (f *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row { return stubRow{} }

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type fakeBeginner struct{ tx *fakeTx }

func (b fakeBeginner) Begin(context.Context) (pgx.Tx, error) { return b.tx, nil }

func TestTracedEmitsWithoutArgs(t *testing.T) {
	tr := &recTracer{}
	q := traced{q: &fakeTx{}, tracer: tr}

	if _, err := q.Exec(context.Background(), "INSERT INTO api_logs VALUES ($1,$2)", "sp_secret", "firma"); err != nil {
		t.Fatal(err)
	}
	_ = q.QueryRow(context.Background(), "SELECT 1").Scan()

	if len(tr.evs) != 2 {
		t.Fatalf("events = %d", len(tr.evs))
	}
	if tr.evs[0].NArgs != 2 || !tr.evs[0].Slow {
		t.Fatalf("event = %+v", tr.evs[0])
	}
}

func TestRunTxCommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	err := traced{}.runTx(context.Background(), fakeBeginner{tx}, func(q RowQuerier) error {
		_, err := q.Exec(context.Background(), "INSERT")
		return err
	})
	if err != nil || !tx.committed || tx.rolledBack {
		t.Fatalf("err=%v committed=%v rolledBack=%v", err, tx.committed, tx.rolledBack)
	}
}

func TestRunTxRollsBackOnError(t *testing.T) {
	boom := errors.New("boom")
	tx := &fakeTx{execErr: boom}
	err := traced{}.runTx(context.Background(), fakeBeginner{tx}, func(q RowQuerier) error {
		_, err := q.Exec(context.Background(), "INSERT")
		return err
	})
	if !errors.Is(err, boom) || tx.committed || !tx.rolledBack {
		t.Fatalf("err=%v committed=%v rolledBack=%v", err, tx.committed, tx.rolledBack)
	}
}

func TestRunTxRollsBackOnPanic(t *testing.T) {
	tx := &fakeTx{}
	func() {
		defer func() { _ = recover() }()
		_ = traced{}.runTx(context.Background(), fakeBeginner{tx}, func(RowQuerier) error { panic("x") })
	}()
	if tx.committed || !tx.rolledBack {
		t.Fatalf("committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
}
