package http

import (
	"net/http"

	"spedicija/internal/platform/net/http/bind"
)

// JSONHandler adapts a pure JSON handler to a platform Handler
// the body is bound and validated before fn runs; a returned Response is written as is
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn without parsing a request body and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return result(fn(r))
	})
}

func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// GetJSON mounts fn as a GET handler without a body
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(fn))
}

// PostJSON mounts fn as a POST handler that binds and validates a T body first
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(fn))
}
