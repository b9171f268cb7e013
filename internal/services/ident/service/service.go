// Package service registers company users with hashed credentials
package service

import (
	"context"
	"errors"
	"strings"

	"spedicija/internal/core/secret"
	"spedicija/internal/modkit/repokit"
	perr "spedicija/internal/platform/errors"
	"spedicija/internal/platform/logger"
	"spedicija/internal/platform/metrics"
	"spedicija/internal/services/ident/domain"

	"golang.org/x/text/cases"
)

// Svc implements domain.ServicePort
type Svc struct {
	db      repokit.DB
	binder  repokit.Binder[domain.Repo]
	hasher  secret.Hasher
	metrics *metrics.Metrics
	locks   *keyedMutex
}

var _ domain.ServicePort = (*Svc)(nil)

// New constructs the registrar
func New(db repokit.DB, binder repokit.Binder[domain.Repo], h secret.Hasher, m *metrics.Metrics) *Svc {
	if db == nil || binder == nil || h == nil {
		panic("ident.Service requires db, binder and hasher")
	}
	return &Svc{db: db, binder: binder, hasher: h, metrics: m, locks: newKeyedMutex()}
}

// CanonicalEmail trims and case folds an email so lookups and the unique index agree
func CanonicalEmail(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Register stores a new identity unless the email is taken
// concurrent registrations of one email are serialized here and by the unique index
func (s *Svc) Register(ctx context.Context, in domain.RegisterInput) (out domain.Identity, err error) {
	defer func() { s.metrics.RecordRegistration(metrics.OutcomeOf(err)) }()

	email := CanonicalEmail(in.Email)
	company := strings.TrimSpace(in.Company)
	if email == "" {
		return domain.Identity{}, perr.WithField(perr.Validationf("email is required"), "email")
	}
	if company == "" {
		return domain.Identity{}, perr.WithField(perr.Validationf("firma is required"), "firma")
	}

	unlock := s.locks.Lock(email)
	defer unlock()

	err = s.db.Acquire(ctx, func(conn repokit.TxRunner) error {
		_, err := repokit.MustBind(s.binder, conn).ByEmail(ctx, email)
		switch {
		case err == nil:
			return conflict()
		case !errors.Is(err, perr.ErrNotFound):
			return perr.Persistence(err, "lookup user")
		}

		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return err
		}
		return conn.Tx(ctx, func(q repokit.Queryer) error {
			id, err := repokit.MustBind(s.binder, q).Insert(ctx, domain.Identity{Email: email, PasswordHash: hash, Company: company})
			if err != nil {
				if perr.IsDuplicateKey(err) {
					return conflict()
				}
				return perr.Persistence(err, "insert user")
			}
			out = id
			return nil
		})
	})
	if err != nil {
		if _, ok := perr.As(err); !ok {
			err = perr.Persistence(err, "register user")
		}
		return domain.Identity{}, perr.WithOp(err, "ident.register")
	}
	logger.C(ctx).Info().Str("firma", out.Company).Int64("user_id", out.ID).Msg("user registered")
	return out, nil
}

func conflict() error {
	return perr.WithField(perr.Conflictf(domain.MsgExists), "email")
}
