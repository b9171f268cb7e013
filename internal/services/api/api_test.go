package api

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spedicija/internal/core/model"
	"spedicija/internal/core/secret"
	"spedicija/internal/modkit/module"
	"spedicija/internal/platform/config"
	"spedicija/internal/platform/metrics"
	phttp "spedicija/internal/platform/net/http"
	"spedicija/internal/platform/store"
	"spedicija/internal/platform/store/storetest"
	kit "spedicija/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func newHandler(t *testing.T) (stdhttp.Handler, *storetest.DB) {
	t.Helper()
	t.Cleanup(module.Reset)

	m, err := model.Load("../../core/model/testdata/model.yaml")
	if err != nil {
		t.Fatal(err)
	}
	db := &storetest.DB{}
	mux := chi.NewRouter()
	a := Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New(),
		Store:         &store.Store{PG: db},
		Metrics:       metrics.New(),
		Model:         m,
		Hasher:        secret.NewBcrypt(4),
		EnableSwagger: true,
	})
	t.Cleanup(a.Close)
	return mux, db
}

func serve(h stdhttp.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var req *stdhttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const predictBody = `{"troškovi":[3420,10,15,1539,171],"vremenski_faktori":[200,450,100,20,50]}`

func TestMountServesStatusAndMeta(t *testing.T) {
	h, _ := newHandler(t)

	rec := serve(h, stdhttp.MethodGet, "/status", "", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("/status = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), "Spedicija API je aktivan!")

	for _, p := range []string{"/meta/health", "/meta/version", "/meta/model"} {
		if rec := serve(h, stdhttp.MethodGet, p, "", nil); rec.Code != stdhttp.StatusOK {
			t.Fatalf("%s = %d", p, rec.Code)
		}
	}
	rec = serve(h, stdhttp.MethodGet, "/meta/model", "", nil)
	kit.MustContain(t, rec.Body.String(), `"inputs":10`)
}

func TestMountPredictFailsClosed(t *testing.T) {
	h, db := newHandler(t)

	if rec := serve(h, stdhttp.MethodPost, "/predict", predictBody, nil); rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("no key = %d", rec.Code)
	}
	if db.Stats().Acquired != 0 {
		t.Fatal("a blank key must not take a connection")
	}

	if rec := serve(h, stdhttp.MethodPost, "/predict", `{"troškovi":[1]}`, map[string]string{"x-api-key": "k"}); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("malformed = %d", rec.Code)
	}

	// the in-memory store has no SQL engine, so the credential lookup fails
	rec := serve(h, stdhttp.MethodPost, "/predict", predictBody, map[string]string{"x-api-key": "sp_x"})
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("store down = %d body = %s", rec.Code, rec.Body)
	}
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env["ukupni_trošak"] != nil {
		t.Fatalf("body = %s", rec.Body)
	}
	if st := db.Stats(); st.Acquired != 1 || st.Released != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestMountRegisterValidation(t *testing.T) {
	h, _ := newHandler(t)
	rec := serve(h, stdhttp.MethodPost, "/register", `{"email":"nope","password":"x","firma":"Alfa"}`, nil)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("register = %d", rec.Code)
	}
}

func TestMountMetricsAndDocs(t *testing.T) {
	h, _ := newHandler(t)
	serve(h, stdhttp.MethodGet, "/status", "", nil)

	rec := serve(h, stdhttp.MethodGet, "/metrics", "", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("/metrics = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), "spedicija_http_requests_total")

	if rec := serve(h, stdhttp.MethodGet, "/api/docs", "", nil); rec.Code != stdhttp.StatusPermanentRedirect {
		t.Fatalf("/api/docs = %d", rec.Code)
	}
	if rec := serve(h, stdhttp.MethodGet, "/debug/pprof/", "", nil); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("profiler should be off, got %d", rec.Code)
	}
}

func TestMountRegistersPorts(t *testing.T) {
	newHandler(t)
	for _, name := range []string{"keys", "audit", "inference", "gateway", "ident"} {
		if _, ok := module.PortsAs[any](name); !ok {
			t.Fatalf("ports for %s not registered", name)
		}
	}
	if got := module.Names(); len(got) != 6 {
		t.Fatalf("modules = %v", got)
	}
}

func TestAPIRunReturnsWithoutMirror(t *testing.T) {
	h := chi.NewRouter()
	t.Cleanup(module.Reset)
	m, _ := model.Load("../../core/model/testdata/model.yaml")
	a := Mount(phttp.AdaptChi(h), Options{Config: config.New(), Store: &store.Store{PG: &storetest.DB{}}, Model: m})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.Run(ctx)
	a.Close()
}
