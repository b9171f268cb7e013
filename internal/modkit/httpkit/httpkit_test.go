package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spedicija/internal/platform/config"
	perr "spedicija/internal/platform/errors"
	phttp "spedicija/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type ping struct {
	Msg string `json:"msg" validate:"required"`
}

func TestSugarMountsThroughRouter(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	Get(r, "/status", func(*http.Request) (any, error) { return Bare(map[string]string{"message": "ok"}), nil })
	PostJSON(r, "/echo", func(_ *http.Request, in ping) (any, error) { return Bare(in), nil })
	Get(r, "/fail", func(*http.Request) (any, error) { return nil, perr.Unauthorizedf("no") })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != 200 || strings.TrimSpace(rec.Body.String()) != `{"message":"ok"}` {
		t.Fatalf("status: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"msg":"zdravo"}`)))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "zdravo") {
		t.Fatalf("echo: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("fail: %d", rec.Code)
	}
}

func TestCommonStackServes(t *testing.T) {
	t.Setenv("STK_CORE_API_REQUEST_TIMEOUT", "2s")
	o := StackOptionsFromEnv(config.New().Prefix("STK_"))
	if o.Timeout.Seconds() != 2 {
		t.Fatalf("timeout = %v", o.Timeout)
	}

	mux := chi.NewRouter()
	mux.Use(CommonStack(o)...)
	mux.Get("/x", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(204) })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != 204 {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id header not set")
	}
}
