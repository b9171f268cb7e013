package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "spedicija/internal/platform/errors"
	"spedicija/internal/platform/logger"
	phttp "spedicija/internal/platform/net/http"
)

// RecoverJSON converts panics into the JSON error envelope and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
