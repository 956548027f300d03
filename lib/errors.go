package lib

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// AuthError covers authentication and authorization failures: bad
// credentials, missing or expired sessions, and role-gate denials.
type AuthError string

func (e AuthError) Error() string { return string(e) }

const (
	ErrInvalidCredentials = AuthError("invalid credentials")
	ErrUnauthorizedRole   = AuthError("unauthorized: admin access required")
	ErrInvalidToken       = AuthError("invalid session token")
	ErrExpiredToken       = AuthError("expired session token")
	ErrRevokedToken       = AuthError("revoked session token")
	ErrNoSession          = AuthError("no active session")
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// StoreError wraps any remote CRUD failure. Network trouble, constraint
// violations and permission denials are all surfaced uniformly; callers
// only decide "keep previous state, show one notice".
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func NewStoreError(op, table string, err error) *StoreError {
	return &StoreError{Op: op, Table: table, Err: MapPgError(err)}
}

// ValidationError is a client-side form/schema check failure. It never
// reaches the remote store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func IsAuthError(err error) bool {
	var ae AuthError
	return errors.As(err, &ae)
}

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// MapPgError maps Postgres SQLSTATE codes onto the shared sentinels. Both
// driver error types are handled; pgdriver is what bun produces, pgconn
// shows up through raw pgx connections.
func MapPgError(err error) error {
	var driverErr pgdriver.Error
	if errors.As(err, &driverErr) {
		switch driverErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrConflict
		case "P0002":
			return ErrNotFound
		}
	}
	return err
}

func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
