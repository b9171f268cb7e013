//go:build integration_pg

// Package pgtest starts a disposable Postgres for integration tests
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"spedicija/internal/platform/store"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Schema mirrors the tables the gateway reads and writes
// the production schema is owned elsewhere; this copy only backs tests
const Schema = `
CREATE TABLE IF NOT EXISTS api_keys (
	api_key    TEXT PRIMARY KEY,
	firma      TEXT NOT NULL,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	firma         TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT users_email_key UNIQUE (email)
);
CREATE TABLE IF NOT EXISTS api_logs (
	id            UUID PRIMARY KEY,
	api_key       TEXT NOT NULL,
	firma         TEXT NOT NULL,
	ulaz_json     JSONB NOT NULL,
	rezultat_json JSONB NOT NULL,
	ip_adresa     TEXT NOT NULL DEFAULT '',
	request_id    TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Start launches postgres:16-alpine and returns a DSN; the container is
// terminated on test cleanup
func Start(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "spedicija",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/spedicija?sslmode=disable", host, mp.Port())
}

// Open starts a container, opens a store on it and applies Schema
func Open(t *testing.T) store.DB {
	t.Helper()
	dsn := Start(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	st, err := store.Open(ctx, store.Config{
		AppName: "spedicija-test",
		PG: store.PGConfig{
			Enabled:        true,
			URL:            dsn,
			MaxConns:       4,
			ConnectRetries: 10,
			PingTimeout:    3 * time.Second,
		},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if _, err := st.PG.Exec(ctx, Schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return st.PG
}
