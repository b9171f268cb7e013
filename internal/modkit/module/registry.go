package module

import (
	"sort"
	"sync"

	pstrings "spedicija/internal/platform/strings"
)

// process wide port table filled once by api.Mount
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the port set of a named module, replacing any earlier one
// a blank name is a wiring bug and panics
func Register(name string, ports any) {
	pstrings.MustString(name, "module name")
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches and type asserts a port set for name
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Names lists registered modules in order
func Names() []string {
	mu.RLock()
	out := make([]string, 0, len(reg))
	for k := range reg {
		out = append(out, k)
	}
	mu.RUnlock()
	sort.Strings(out)
	return out
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
