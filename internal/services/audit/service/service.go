// Package service records served predictions; a request is only served once its entry commits
package service

import (
	"context"
	"time"

	"spedicija/internal/modkit/repokit"
	perr "spedicija/internal/platform/errors"
	"spedicija/internal/platform/logger"
	"spedicija/internal/services/audit/domain"

	"github.com/google/uuid"
)

// Config for the audit service
type Config struct {
	// QueryTimeout bounds the whole write, commit included. 0 disables
	QueryTimeout time.Duration
	// ListLimit caps List results
	ListLimit int
}

// Svc implements domain.RecorderPort and domain.ReaderPort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	cfg    Config
	mirror domain.Mirror
}

var (
	_ domain.RecorderPort = (*Svc)(nil)
	_ domain.ReaderPort   = (*Svc)(nil)

	newID = uuid.NewV7
)

// New constructs the audit service. db backs List only and may be nil
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], cfg Config, mirror domain.Mirror) *Svc {
	if binder == nil {
		panic("audit.Service requires a non-nil Repo binder")
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 100
	}
	return &Svc{db: db, binder: binder, cfg: cfg, mirror: mirror}
}

// Record writes e in its own transaction on db and returns the committed entry
// any failure, timeout or caller cancellation included, is a persistence error and nothing is written
func (s *Svc) Record(ctx context.Context, db repokit.TxRunner, e domain.Entry) (domain.Entry, error) {
	if e.ID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return domain.Entry{}, perr.Persistence(err, "audit entry id")
		}
		e.ID = id
	}

	if s.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancel()
	}

	var out domain.Entry
	tx := repokit.WithBeginHooks(db, repokit.StatementTimeout(s.cfg.QueryTimeout))
	err := tx.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.binder.Bind(q).Insert(ctx, e)
		return err
	})
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("audit_id", e.ID.String()).Msg("audit write failed")
		return domain.Entry{}, perr.Persistence(err, "record audit entry")
	}

	if s.mirror != nil {
		s.mirror.Enqueue(out)
	}
	return out, nil
}

// List returns recent entries, newest first
func (s *Svc) List(ctx context.Context, f domain.ListFilter) ([]domain.Entry, error) {
	if s.db == nil {
		return nil, perr.Unavailablef("audit store not configured")
	}
	if f.Limit <= 0 || f.Limit > s.cfg.ListLimit {
		f.Limit = s.cfg.ListLimit
	}
	xs, err := s.binder.Bind(s.db).List(ctx, f)
	if err != nil {
		return nil, perr.FromPostgres(err, "list audit entries")
	}
	return xs, nil
}
