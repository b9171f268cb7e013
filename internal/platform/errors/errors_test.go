package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeConflict, http.StatusBadRequest},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodePersistence, http.StatusServiceUnavailable},
		{ErrorCodeModel, http.StatusInternalServerError},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorRenderAndUnwrap(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q", nilErr.Error())
	}

	src := stderrs.New("root")
	e := Wrapf(src, ErrorCodeDB, "insert %s", "api_logs")
	if got := e.Error(); got != "insert api_logs: root" {
		t.Fatalf("Wrapf render = %q", got)
	}
	if !stderrs.Is(e, src) {
		t.Fatal("wrapped error should match its cause")
	}
	if Root(fmt.Errorf("outer: %w", e)) != src {
		t.Fatal("Root should return the deepest cause")
	}
}

func TestCodeOfThroughForeignWrapping(t *testing.T) {
	inner := Unauthorizedf("Nevažeći API ključ")
	outer := fmt.Errorf("predict: %w", inner)

	if CodeOf(outer) != ErrorCodeUnauthorized {
		t.Fatalf("CodeOf = %v", CodeOf(outer))
	}
	if !IsCode(outer, ErrorCodeUnauthorized) {
		t.Fatal("IsCode should see through fmt wrapping")
	}
	if HTTPStatus(outer) != http.StatusUnauthorized {
		t.Fatalf("HTTPStatus = %d", HTTPStatus(outer))
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatal("foreign errors should map to Unknown")
	}
}

func TestWireHidesCause(t *testing.T) {
	e := Wrap(stderrs.New("dial tcp 10.0.0.1:5432: refused"), ErrorCodePersistence, "audit write failed")
	w := WireFrom(e)
	if w.Code != ErrorCodePersistence || w.Message != "audit write failed" {
		t.Fatalf("unexpected wire %+v", w)
	}

	w = WireFrom(stderrs.New("secret internals"))
	if w.Code != ErrorCodeUnknown || w.Message != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("foreign error leaked: %+v", w)
	}

	if (WireFrom(nil) != Wire{}) {
		t.Fatal("nil error should give zero wire")
	}

	status, w := HTTP(Validationf("troškovi must have 5 values"))
	if status != http.StatusBadRequest || w.Code != ErrorCodeValidation {
		t.Fatalf("HTTP() = %d %+v", status, w)
	}
}

func TestWithFieldAndOpCopyOnWrite(t *testing.T) {
	orig := Validationf("bad")
	withField := WithField(orig, "email")
	withOp := WithOp(withField, "register")

	e, _ := As(orig)
	if e.Field() != "" || e.Op() != "" {
		t.Fatal("original mutated")
	}
	e2, _ := As(withOp)
	if e2.Field() != "email" || e2.Op() != "register" {
		t.Fatalf("field/op = %q/%q", e2.Field(), e2.Op())
	}

	plain := stderrs.New("x")
	if WithField(plain, "f") != plain || WithOp(plain, "o") != plain {
		t.Fatal("foreign errors should pass through")
	}
}

func TestModelAndPersistence(t *testing.T) {
	cause := stderrs.New("boom")

	m := Model(cause, "inference failed")
	if CodeOf(m) != ErrorCodeModel || !stderrs.Is(m, cause) {
		t.Fatalf("Model() = %v", m)
	}

	p := Persistence(cause, "lookup failed")
	if CodeOf(p) != ErrorCodePersistence {
		t.Fatalf("Persistence code = %v", CodeOf(p))
	}
	if Persistence(p, "outer") != p {
		t.Fatal("already classified persistence errors should pass through")
	}
	if Persistence(nil, "x") != nil {
		t.Fatal("Persistence(nil) should be nil")
	}
}

func TestSugarCodes(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{Validationf("x"), ErrorCodeValidation},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{Unauthorizedf("x"), ErrorCodeUnauthorized},
		{Conflictf("x"), ErrorCodeConflict},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, c := range cases {
		if got := CodeOf(c.err); got != c.want {
			t.Fatalf("%v: code %v want %v", c.err, got, c.want)
		}
	}
}
