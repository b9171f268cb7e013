// Package repo provides Postgres bindings for the api key domain.Repo
package repo

import (
	"context"

	"spedicija/internal/modkit/repokit"
	"spedicija/internal/platform/store"
	"spedicija/internal/services/keys/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

const cols = `api_key, firma, is_active, created_at`

func scanKey(r repokit.Row) (domain.Key, error) {
	var k domain.Key
	err := r.Scan(&k.Key, &k.Company, &k.Active, &k.CreatedAt)
	return k, err
}

// LookupActive implements domain.Repo
func (r *queries) LookupActive(ctx context.Context, key string) (domain.Key, error) {
	return store.One(ctx, r.q, scanKey,
		`SELECT `+cols+` FROM api_keys WHERE api_key = $1 AND is_active = TRUE`, key)
}

// Insert implements domain.Repo
func (r *queries) Insert(ctx context.Context, k domain.Key) (domain.Key, error) {
	return store.One(ctx, r.q, scanKey,
		`INSERT INTO api_keys (api_key, firma, is_active) VALUES ($1, $2, TRUE) RETURNING `+cols,
		k.Key, k.Company)
}

// Deactivate implements domain.Repo
func (r *queries) Deactivate(ctx context.Context, key string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE api_keys SET is_active = FALSE WHERE api_key = $1 AND is_active = TRUE`, key)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// List implements domain.Repo
func (r *queries) List(ctx context.Context, company string) ([]domain.Key, error) {
	return store.Many(ctx, r.q, scanKey,
		`SELECT `+cols+` FROM api_keys WHERE ($1 = '' OR firma = $1) ORDER BY created_at, api_key`, company)
}
