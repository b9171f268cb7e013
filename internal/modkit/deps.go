// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"spedicija/internal/modkit/repokit"
	"spedicija/internal/platform/config"
	"spedicija/internal/platform/logger"
	"spedicija/internal/platform/metrics"
	"spedicija/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.DB
	CH      store.Clickhouse
	Metrics *metrics.Metrics

	// QueryTimeout bounds credential and audit statements, 0 disables
	QueryTimeout time.Duration
}
