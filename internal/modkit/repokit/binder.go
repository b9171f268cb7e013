package repokit

import (
	"fmt"
	"reflect"
)

// Binder turns a Queryer (pool, pinned connection or open tx) into a domain repo
// services hold a Binder so one request can bind the same repo to different scopes
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a repo constructor such as repo.New to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds q and panics when q is nil, which is always a wiring bug
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic(fmt.Sprintf("repokit: binding %v to a nil Queryer", reflect.TypeFor[T]()))
	}
	return b.Bind(q)
}
