package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"spedicija/internal/platform/logger"
	"spedicija/internal/platform/metrics"
	"spedicija/internal/platform/store"
	"spedicija/internal/services/audit/domain"
)

// MirrorConfig controls the clickhouse mirror
type MirrorConfig struct {
	Table      string
	Buffer     int
	Batch      int
	FlushEvery time.Duration
}

// Mirror copies committed entries to clickhouse in batches
// it never blocks a request: a full buffer drops the entry and counts it
type Mirror struct {
	ch      store.Clickhouse
	cfg     MirrorConfig
	metrics *metrics.Metrics
	in      chan domain.Entry

	started  atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

var _ domain.Mirror = (*Mirror)(nil)

// NewMirror constructs a mirror; call Run to start shipping
func NewMirror(ch store.Clickhouse, cfg MirrorConfig, m *metrics.Metrics) *Mirror {
	if cfg.Table == "" {
		cfg.Table = "audit_mirror"
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 1024
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 200
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 2 * time.Second
	}
	return &Mirror{
		ch:      ch,
		cfg:     cfg,
		metrics: m,
		in:      make(chan domain.Entry, cfg.Buffer),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Enqueue implements domain.Mirror
func (m *Mirror) Enqueue(e domain.Entry) {
	select {
	case m.in <- e:
	default:
		m.metrics.RecordMirrorDropped(1)
	}
}

// Run ships batches until ctx ends or Close is called, then flushes what is buffered
func (m *Mirror) Run(ctx context.Context) {
	if !m.started.CompareAndSwap(false, true) {
		return
	}
	defer close(m.done)
	log := logger.Named("audit-mirror")
	ticker := time.NewTicker(m.cfg.FlushEvery)
	defer ticker.Stop()

	batch := make([]domain.Entry, 0, m.cfg.Batch)
	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		if err := m.ch.Insert(ctx, m.cfg.Table, rows(batch)); err != nil {
			log.Warn().Err(err).Int("rows", len(batch)).Msg("mirror insert failed; batch dropped")
			m.metrics.RecordMirrorDropped(len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case e := <-m.in:
			batch = append(batch, e)
			if len(batch) >= m.cfg.Batch {
				flush(ctx)
			}
		case <-ticker.C:
			flush(ctx)
		case <-ctx.Done():
			m.drain(&batch, flush)
			return
		case <-m.stop:
			m.drain(&batch, flush)
			return
		}
	}
}

func (m *Mirror) drain(batch *[]domain.Entry, flush func(context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case e := <-m.in:
			*batch = append(*batch, e)
			if len(*batch) >= m.cfg.Batch {
				flush(ctx)
			}
		default:
			flush(ctx)
			return
		}
	}
}

// Close stops Run and waits for the final flush; a mirror that never ran closes at once
func (m *Mirror) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
	if m.started.Load() {
		<-m.done
	}
}

func rows(xs []domain.Entry) [][]any {
	out := make([][]any, 0, len(xs))
	for _, e := range xs {
		out = append(out, []any{
			e.ID.String(), e.APIKey, e.Company,
			string(e.Input), string(e.Output),
			e.ClientAddr, e.RequestID, e.CreatedAt.UTC(),
		})
	}
	return out
}
