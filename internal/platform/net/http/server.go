package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"spedicija/internal/platform/config"
	perr "spedicija/internal/platform/errors"
	"spedicija/internal/platform/logger"
	pnet "spedicija/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	addr     string
	mux      *chi.Mux
	srv      *stdhttp.Server
	shutdown time.Duration
}

// NewServer creates an http server configured from cfg (ADDR, *_TIMEOUT)
// opts receive the *chi.Mux so callers can mount routes/mw
// unmatched routes and methods answer with the error envelope
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("ADDR", ":8000")
	m := chi.NewRouter()
	m.NotFound(Handle(func(r *stdhttp.Request) Response {
		return Error(perr.NotFoundf("no route for %s", r.URL.Path))
	}))
	m.MethodNotAllowed(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		JSON(w, stdhttp.StatusMethodNotAllowed, Envelope{
			StatusCode: stdhttp.StatusMethodNotAllowed,
			Status:     stdhttp.StatusText(stdhttp.StatusMethodNotAllowed),
			Code:       perr.ErrorCodeInvalidArgument,
			Error:      r.Method + " is not allowed on " + r.URL.Path,
			RequestID:  pnet.RequestID(r.Context()),
		})
	})
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr:     addr,
		mux:      m,
		shutdown: cfg.MayDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 120*time.Second),
		},
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler exposes the root handler, handy for httptest
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is canceled, then drains in flight requests
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http listening")
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Dur("grace", s.shutdown).Msg("http shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		return s.Shutdown(sctx)
	}
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
