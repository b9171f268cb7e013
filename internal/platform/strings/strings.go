// Package strings provides small string and slice helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// Prefix normalizes a mount path like "meta/" to "/meta"
// blank and "/" both mean the root and yield ""
func Prefix(s string) string {
	s = std.Trim(std.TrimSpace(s), "/")
	if s == "" {
		return ""
	}
	return "/" + s
}

// Mask keeps the first n runes of a secret and replaces the rest with "…"
// used to log API keys without leaking them
func Mask(secret string, n int) string {
	r := []rune(secret)
	if len(r) <= n {
		return std.Repeat("*", len(r))
	}
	return string(r[:n]) + "…"
}
