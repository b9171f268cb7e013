// Package raw provides a minimal env reader used during bootstrap.
// It has NO dependency on the logger package so the logger can read its own settings
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a namespaced view over environment variables (e.g. "LOG_")
type Conf struct{ prefix string }

// New returns a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(key string) string { return strings.TrimSpace(os.Getenv(c.prefix + key)) }

// Get returns the trimmed env var or def if empty
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetBool parses "1|true|yes|on" as true; any other non empty value is false
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.value(key)) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt parses a non negative integer; anything else yields def
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.value(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
