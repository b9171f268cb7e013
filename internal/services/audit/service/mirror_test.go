package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"spedicija/internal/platform/metrics"
	"spedicija/internal/platform/store"
	kit "spedicija/internal/platform/testkit"
	"spedicija/internal/services/audit/domain"

	"github.com/google/uuid"
)

type fakeCH struct {
	mu     sync.Mutex
	tables []string
	rows   int
	err    error
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.tables = append(f.tables, table)
	f.rows += len(rows)
	return nil
}

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeCH) Ping(context.Context) error                                { return nil }
func (f *fakeCH) Close() error                                              { return nil }

func (f *fakeCH) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows
}

func dropped(t *testing.T, m *metrics.Metrics) float64 {
	t.Helper()
	mfs, err := m.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "spedicija_audit_mirror_dropped_total" {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func mirrored() domain.Entry {
	return domain.Entry{ID: uuid.New(), APIKey: "k1", Company: "Alfa", CreatedAt: time.Now()}
}

func TestMirrorBatchesAndFlushesOnClose(t *testing.T) {
	ch := &fakeCH{}
	m := NewMirror(ch, MirrorConfig{Batch: 2, FlushEvery: time.Hour}, nil)
	go m.Run(context.Background())

	for i := 0; i < 3; i++ {
		m.Enqueue(mirrored())
	}
	kit.Eventually(t, time.Second, func() bool { return ch.count() == 2 }, "first full batch shipped")

	m.Close()
	if ch.count() != 3 {
		t.Fatalf("rows after close = %d", ch.count())
	}
	if ch.tables[0] != "audit_mirror" {
		t.Fatalf("table = %q", ch.tables[0])
	}
}

func TestMirrorTickerFlush(t *testing.T) {
	ch := &fakeCH{}
	m := NewMirror(ch, MirrorConfig{Batch: 100, FlushEvery: 10 * time.Millisecond}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	m.Enqueue(mirrored())
	kit.Eventually(t, time.Second, func() bool { return ch.count() == 1 }, "ticker flush")
}

func TestMirrorDropsWhenFullOrFailing(t *testing.T) {
	met := metrics.New()
	m := NewMirror(&fakeCH{}, MirrorConfig{Buffer: 1}, met)
	m.Enqueue(mirrored())
	m.Enqueue(mirrored()) // not running: buffer of one is full
	if got := dropped(t, met); got != 1 {
		t.Fatalf("dropped = %v", got)
	}
	m.Close() // never ran

	failing := &fakeCH{err: errors.New("ch down")}
	m = NewMirror(failing, MirrorConfig{Batch: 1, FlushEvery: time.Hour}, met)
	go m.Run(context.Background())
	m.Enqueue(mirrored())
	kit.Eventually(t, time.Second, func() bool { return dropped(t, met) == 2 }, "failed batch counted")
	m.Close()
}
