package httpkit

import (
	"net/http"

	phttp "spedicija/internal/platform/net/http"
)

// PostJSON mounts a pure JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// Get registers a no-body handler
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}
