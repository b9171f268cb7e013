package store

import (
	"time"

	"spedicija/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// QueryTimeout bounds a single credential or audit statement, 0 disables
	QueryTimeout time.Duration

	// boot knobs
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string

	// ClientName and ClientTag end up in system.query_log client info
	ClientName string
	ClientTag  string
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* from cfg
func ConfigFromEnv(cfg config.Conf, appName string) Config {
	pg := cfg.Prefix("SERVICE_PGSQL_")
	ch := cfg.Prefix("SERVICE_CLICKHOUSE_")

	out := Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pg.MayBool("ENABLED", true),
			URL:            pg.MayString("DBURL", ""),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 10)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 250),
			QueryTimeout:   pg.MayDuration("QUERY_TIMEOUT", 2*time.Second),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:    ch.MayBool("ENABLED", false),
			URL:        ch.MayString("DBURL", ""),
			ClientName: appName,
			ClientTag:  ch.MayString("CLIENT_TAG", ""),
		},
	}
	if out.PG.Enabled && out.PG.URL == "" {
		out.PG.URL = pg.MustString("DBURL")
	}
	if out.CH.Enabled && out.CH.URL == "" {
		out.CH.URL = ch.MustString("DBURL")
	}
	return out
}
