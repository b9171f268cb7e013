package domain

import (
	"context"

	"spedicija/internal/modkit/repokit"
)

// Repo is the storage surface for audit entries
type Repo interface {
	Insert(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, f ListFilter) ([]Entry, error)
}

// RecorderPort durably records an entry on the caller's connection
// it returns only after the entry is committed
type RecorderPort interface {
	Record(ctx context.Context, db repokit.TxRunner, e Entry) (Entry, error)
}

// ReaderPort lists recorded entries, newest first
type ReaderPort interface {
	List(ctx context.Context, f ListFilter) ([]Entry, error)
}

// Mirror receives committed entries for best effort replication
type Mirror interface {
	Enqueue(e Entry)
}
