package repokit

import (
	"context"
	"fmt"
)

type guarder interface {
	Guard(context.Context) error
}

// MustGuard pings every enabled backend once before the server starts listening
func MustGuard(ctx context.Context, st guarder) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("storage not reachable at startup: %w", err))
	}
}
