package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func pg(code, col, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ColumnName: col, ConstraintName: constraint}
}

func TestDBErrorCodeMappings(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeInvalidArgument},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22001", ErrorCodeInvalidArgument},
		{"40001", ErrorCodeDB},
		{"57014", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"XXXXX", ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(fmt.Errorf("exec: %w", pg(c.code, "", "")))
		if !ok || got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v,%v want %v", c.code, got, ok, c.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("nope")); ok {
		t.Fatal("non pg error should report ok=false")
	}
}

func TestIsDuplicateKeyAndFromPostgres(t *testing.T) {
	dup := pg("23505", "", "users_email_key")
	if !IsDuplicateKey(fmt.Errorf("insert: %w", dup)) {
		t.Fatal("expected duplicate key")
	}
	if IsDuplicateKey(stderrs.New("x")) {
		t.Fatal("plain error is not a duplicate key")
	}

	wrapped := FromPostgres(dup, "insert user")
	if CodeOf(wrapped) != ErrorCodeDuplicateKey {
		t.Fatalf("FromPostgres code = %v", CodeOf(wrapped))
	}
	if got, _ := As(wrapped); got.Field() != "email" {
		t.Fatalf("FromPostgres field = %q", got.Field())
	}
	if CodeOf(FromPostgres(stderrs.New("x"), "y")) != ErrorCodeDB {
		t.Fatal("non pg errors should map to DB")
	}
	if FromPostgres(nil, "x") != nil {
		t.Fatal("nil in, nil out")
	}
}

func TestAttachFieldFromPg(t *testing.T) {
	e := AttachFieldFromPg(FromPostgres(pg("23505", "", "users_email_key"), "insert"))
	if got, _ := As(e); got.Field() != "email" {
		t.Fatalf("field = %q", got.Field())
	}

	e = AttachFieldFromPg(FromPostgres(pg("23502", "firma", ""), "insert"))
	if got, _ := As(e); got.Field() != "firma" {
		t.Fatalf("field = %q", got.Field())
	}

	plain := stderrs.New("x")
	if AttachFieldFromPg(plain) != plain {
		t.Fatal("non pg errors pass through")
	}
}

func TestNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Fatal("expected no rows")
	}
	if NotFoundIfNoRows(pgx.ErrNoRows) != ErrNotFound {
		t.Fatal("expected ErrNotFound")
	}
	other := stderrs.New("x")
	if NotFoundIfNoRows(other) != other {
		t.Fatal("other errors pass through")
	}
}
