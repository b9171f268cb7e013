package testkit

import (
	"sync"
	"testing"
)

var seamMu sync.Mutex

// Swap replaces a package-level variable for the duration of the test
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial runs the test under a global lock so tests that Swap seams do not interfere
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
