package domain

import "context"

// Repo is the storage surface for identities
type Repo interface {
	// ByEmail returns the identity for a canonical email or errors.ErrNotFound
	ByEmail(ctx context.Context, email string) (Identity, error)
	Insert(ctx context.Context, id Identity) (Identity, error)
}

// ServicePort registers identities
type ServicePort interface {
	Register(ctx context.Context, in RegisterInput) (Identity, error)
}
