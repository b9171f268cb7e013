// Package repo provides Postgres bindings for the audit domain.Repo
package repo

import (
	"context"
	"fmt"
	"strings"

	"spedicija/internal/modkit/repokit"
	"spedicija/internal/platform/store"
	"spedicija/internal/services/audit/domain"
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

const cols = `id, api_key, firma, ulaz_json, rezultat_json, ip_adresa, request_id, created_at`

func scanEntry(r repokit.Row) (domain.Entry, error) {
	var (
		e           domain.Entry
		input, outp []byte
	)
	if err := r.Scan(&e.ID, &e.APIKey, &e.Company, &input, &outp, &e.ClientAddr, &e.RequestID, &e.CreatedAt); err != nil {
		return domain.Entry{}, err
	}
	e.Input, e.Output = input, outp
	return e, nil
}

// Insert implements domain.Repo
func (r *queries) Insert(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	return store.One(ctx, r.q, scanEntry, `
		INSERT INTO api_logs (id, api_key, firma, ulaz_json, rezultat_json, ip_adresa, request_id)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7)
		RETURNING `+cols,
		e.ID, e.APIKey, e.Company, string(e.Input), string(e.Output), e.ClientAddr, e.RequestID,
	)
}

// List implements domain.Repo
func (r *queries) List(ctx context.Context, f domain.ListFilter) ([]domain.Entry, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`SELECT ` + cols + ` FROM api_logs WHERE TRUE`)
	if f.APIKey != "" {
		sb.WriteString(" AND api_key = " + arg(f.APIKey))
	}
	if f.Company != "" {
		sb.WriteString(" AND firma = " + arg(f.Company))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC LIMIT " + arg(f.Limit))

	return store.Many(ctx, r.q, scanEntry, sb.String(), args...)
}
