// Package repokit provides common types and helpers for repository implementations
package repokit

import "spedicija/internal/platform/store"

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

// Pool hands out one connection per unit of work
type Pool = store.Pool

// DB is a TxRunner that can also pin a connection
type DB = store.DB

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)
