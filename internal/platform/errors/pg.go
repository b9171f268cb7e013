package errors

// Postgres-specific helpers for mapping pgx errors to project ErrorCode

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we care about
const (
	pgErrUniqueViolation           = "23505"
	pgErrForeignKeyViolation       = "23503"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"

	pgErrQueryCanceled          = "57014"
	pgErrReadOnlySQLTransaction = "25006"
	pgErrCannotConnectNow       = "57P03"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports whether the error is a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// IsNoRows reports whether err means a single-row query matched nothing
func IsNoRows(err error) bool { return stderrs.Is(err, pgx.ErrNoRows) }

// NotFoundIfNoRows turns pgx.ErrNoRows into ErrNotFound and leaves other errors as is
func NotFoundIfNoRows(err error) error {
	if IsNoRows(err) {
		return ErrNotFound
	}
	return err
}

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrForeignKeyViolation, pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation:
		return ErrorCodeInvalidArgument, true
	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow, pgErrQueryCanceled:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with a mapped ErrorCode, message and offending field
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return AttachFieldFromPg(Wrap(err, code, msg))
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// AttachFieldFromPg enriches an error with a field name derived from PgError
// Priority: ColumnName, then the middle token of ConstraintName (users_email_key -> email)
func AttachFieldFromPg(err error) error {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return err
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(err, col)
	}
	parts := strings.Split(strings.TrimSpace(pgErr.ConstraintName), "_")
	if len(parts) >= 3 && (parts[len(parts)-1] == "key" || parts[len(parts)-1] == "idx") {
		return WithField(err, strings.Join(parts[1:len(parts)-1], "_"))
	}
	return err
}
