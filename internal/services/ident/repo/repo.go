// Package repo provides Postgres bindings for the identity domain.Repo
package repo

import (
	"context"

	"spedicija/internal/modkit/repokit"
	"spedicija/internal/platform/store"
	"spedicija/internal/services/ident/domain"
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

const cols = `id, email, password_hash, firma, created_at`

func scanIdentity(r repokit.Row) (domain.Identity, error) {
	var id domain.Identity
	err := r.Scan(&id.ID, &id.Email, &id.PasswordHash, &id.Company, &id.CreatedAt)
	return id, err
}

// ByEmail implements domain.Repo
func (r *queries) ByEmail(ctx context.Context, email string) (domain.Identity, error) {
	return store.One(ctx, r.q, scanIdentity, `SELECT `+cols+` FROM users WHERE email = $1`, email)
}

// Insert implements domain.Repo; a duplicate email surfaces as SQLSTATE 23505
func (r *queries) Insert(ctx context.Context, id domain.Identity) (domain.Identity, error) {
	return store.One(ctx, r.q, scanIdentity,
		`INSERT INTO users (email, password_hash, firma) VALUES ($1, $2, $3) RETURNING `+cols,
		id.Email, id.PasswordHash, id.Company)
}
