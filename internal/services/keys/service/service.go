// Package service provides the api key service: caller authentication and provisioning
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"spedicija/internal/modkit/repokit"
	perr "spedicija/internal/platform/errors"
	"spedicija/internal/platform/logger"
	"spedicija/internal/services/keys/domain"
)

// Config for the key service
type Config struct {
	// QueryTimeout bounds the lookup, 0 disables
	QueryTimeout time.Duration
}

// Svc implements domain.AuthPort and domain.AdminPort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	cfg    Config
}

var (
	_ domain.AuthPort  = (*Svc)(nil)
	_ domain.AdminPort = (*Svc)(nil)

	// newSecret is the key material source
	newSecret = func() (string, error) {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}
		return base64.RawURLEncoding.EncodeToString(b), nil
	}
)

// New constructs the key service. db may be nil when only Authenticate is used
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], cfg Config) *Svc {
	if binder == nil {
		panic("keys.Service requires a non-nil Repo binder")
	}
	return &Svc{db: db, binder: binder, cfg: cfg}
}

// Authenticate resolves key to its active record on q
// missing, unknown and inactive keys all fail with the same unauthorized error
func (s *Svc) Authenticate(ctx context.Context, q repokit.Queryer, key string) (domain.Key, error) {
	// the stored key must match byte for byte; only a blank header is rejected early
	if strings.TrimSpace(key) == "" {
		logger.C(ctx).Debug().Str("reason", "missing").Msg("api key rejected")
		return domain.Key{}, perr.Unauthorizedf(domain.MsgInvalidKey)
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	k, err := s.binder.Bind(q).LookupActive(qctx, key)
	switch {
	case errors.Is(err, perr.ErrNotFound):
		logger.C(ctx).Debug().Str("reason", "unknown_or_inactive").Msg("api key rejected")
		return domain.Key{}, perr.Unauthorizedf(domain.MsgInvalidKey)
	case err != nil:
		return domain.Key{}, perr.Persistence(err, "lookup api key")
	}
	return k, nil
}

// Issue creates a new active key for company
func (s *Svc) Issue(ctx context.Context, company string) (domain.Key, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return domain.Key{}, perr.WithField(perr.Validationf("firma is required"), "firma")
	}
	secret, err := newSecret()
	if err != nil {
		return domain.Key{}, perr.Wrap(err, perr.ErrorCodeUnknown, "generate api key")
	}

	var out domain.Key
	err = s.tx(ctx, func(r domain.Repo) error {
		k, err := r.Insert(ctx, domain.Key{Key: domain.KeyPrefix + secret, Company: company})
		out = k
		return err
	})
	if err != nil {
		return domain.Key{}, dbErr(err, "insert api key")
	}
	logger.C(ctx).Info().Str("firma", company).Str("api_key", out.Masked()).Msg("api key issued")
	return out, nil
}

// Revoke deactivates key; unknown or already inactive keys are not found
func (s *Svc) Revoke(ctx context.Context, key string) error {
	var ok bool
	err := s.tx(ctx, func(r domain.Repo) error {
		var err error
		ok, err = r.Deactivate(ctx, strings.TrimSpace(key))
		return err
	})
	if err != nil {
		return dbErr(err, "revoke api key")
	}
	if !ok {
		return perr.NotFoundf("api key not found or already inactive")
	}
	logger.C(ctx).Info().Str("api_key", domain.Key{Key: key}.Masked()).Msg("api key revoked")
	return nil
}

// List returns keys, optionally filtered by company
func (s *Svc) List(ctx context.Context, company string) ([]domain.Key, error) {
	if s.db == nil {
		return nil, perr.Unavailablef("key store not configured")
	}
	ks, err := s.binder.Bind(s.db).List(ctx, strings.TrimSpace(company))
	if err != nil {
		return nil, dbErr(err, "list api keys")
	}
	return ks, nil
}

func (s *Svc) tx(ctx context.Context, fn func(domain.Repo) error) error {
	if s.db == nil {
		return perr.Unavailablef("key store not configured")
	}
	return s.db.Tx(ctx, func(q repokit.Queryer) error {
		return fn(s.binder.Bind(q))
	})
}

func (s *Svc) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.QueryTimeout)
}

// dbErr classifies raw driver errors and leaves typed ones alone
func dbErr(err error, msg string) error {
	if _, ok := perr.As(err); ok {
		return err
	}
	return perr.FromPostgres(err, msg)
}
