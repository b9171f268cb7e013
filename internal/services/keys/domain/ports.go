package domain

import (
	"context"

	"spedicija/internal/modkit/repokit"
)

// Repo is the storage surface for api keys
type Repo interface {
	// LookupActive returns the active key equal to key or errors.ErrNotFound
	LookupActive(ctx context.Context, key string) (Key, error)
	Insert(ctx context.Context, k Key) (Key, error)
	// Deactivate reports whether an active key was switched off
	Deactivate(ctx context.Context, key string) (bool, error)
	// List returns all keys, or only company's when company is not empty
	List(ctx context.Context, company string) ([]Key, error)
}

// AuthPort authenticates a caller key on a connection the caller already holds
type AuthPort interface {
	Authenticate(ctx context.Context, q repokit.Queryer, key string) (Key, error)
}

// AdminPort provisions keys out of band
type AdminPort interface {
	Issue(ctx context.Context, company string) (Key, error)
	Revoke(ctx context.Context, key string) error
	List(ctx context.Context, company string) ([]Key, error)
}
