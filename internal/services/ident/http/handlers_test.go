package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "spedicija/internal/platform/errors"
	phttp "spedicija/internal/platform/net/http"
	"spedicija/internal/services/ident/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	seen  map[string]bool
	calls int
}

func (f *fakeSvc) Register(_ context.Context, in domain.RegisterInput) (domain.Identity, error) {
	f.calls++
	if f.seen[in.Email] {
		return domain.Identity{}, perr.WithField(perr.Conflictf(domain.MsgExists), "email")
	}
	f.seen[in.Email] = true
	return domain.Identity{ID: 1, Email: in.Email, Company: in.Company}, nil
}

func do(h stdhttp.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(stdhttp.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterThenDuplicate(t *testing.T) {
	svc := &fakeSvc{seen: map[string]bool{}}
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), svc)

	const body = `{"email":"ana@firma.rs","password":"tajna","firma":"Alfa"}`
	rec := do(mux, body)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got["message"] != domain.MsgRegistered || len(got) != 1 {
		t.Fatalf("body = %s", rec.Body)
	}

	rec = do(mux, body)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("duplicate code = %d", rec.Code)
	}
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env["error"] != domain.MsgExists {
		t.Fatalf("duplicate body = %s", rec.Body)
	}
}

func TestRegisterRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"no email":  `{"password":"x","firma":"Alfa"}`,
		"bad email": `{"email":"nope","password":"x","firma":"Alfa"}`,
		"no firma":  `{"email":"a@b.rs","password":"x"}`,
		"unknown":   `{"email":"a@b.rs","password":"x","firma":"Alfa","role":"admin"}`,
		"not json":  `email=a@b.rs`,
	}
	for name, b := range cases {
		svc := &fakeSvc{seen: map[string]bool{}}
		mux := chi.NewRouter()
		Register(phttp.AdaptChi(mux), svc)
		if rec := do(mux, b); rec.Code != stdhttp.StatusBadRequest {
			t.Fatalf("%s: code = %d", name, rec.Code)
		}
		if svc.calls != 0 {
			t.Fatalf("%s: service called", name)
		}
	}
}
