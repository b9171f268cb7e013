// Package config handles application configuration via environment variables
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"spedicija/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a namespaced view over environment variables (e.g. "CORE_API_", "SERVICE_PGSQL_")
// Use New() for global access, or Prefix("API_") for module scopes
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("INFER_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully-qualified env var name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// LoadDotEnv loads the given dotenv files (default ".env") without overriding
// variables that are already set. Missing files are skipped
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// mayParse reads key with parse, logging and returning def when the value is invalid
func mayParse[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MayInt returns the value or def if missing/empty/invalid
func (c Conf) MayInt(key string, def int) int {
	return mayParse(c, key, def, "int", strconv.Atoi)
}

// MayBool returns the value or def if missing/empty/invalid
func (c Conf) MayBool(key string, def bool) bool {
	return mayParse(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration returns the value or def if missing/empty/invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return mayParse(c, key, def, "duration", time.ParseDuration)
}

// MayCSV returns a slice of strings from a comma-separated env var; def if missing/empty
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
