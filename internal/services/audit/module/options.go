package module

import (
	"time"

	"spedicija/internal/platform/config"
	"spedicija/internal/services/audit/service"
)

// Options holds configuration for the audit module
type Options struct {
	ListLimit int
	Mirror    service.MirrorConfig
}

// FromConfig reads AUDIT_* settings
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("AUDIT_")
	return Options{
		ListLimit: ac.MayInt("LIST_LIMIT", 100),
		Mirror: service.MirrorConfig{
			Table:      ac.MayString("MIRROR_TABLE", "audit_mirror"),
			Buffer:     ac.MayInt("MIRROR_BUFFER", 1024),
			Batch:      ac.MayInt("MIRROR_BATCH", 200),
			FlushEvery: ac.MayDuration("MIRROR_FLUSH", 2*time.Second),
		},
	}
}
