package common

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError marks a row or request field as missing or malformed. It is
// always recoverable: the offending row is skipped, everything else proceeds.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ReferenceNotFoundError means a natural key did not resolve to a persisted
// entity, even after the forward-reference pass of an import.
type ReferenceNotFoundError struct {
	EntityType string
	Name       string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.EntityType, e.Name)
}

// ConflictError covers duplicate natural keys and deletes blocked by dependents.
type ConflictError struct {
	EntityType string
	Name       string
	Reason     string
}

func (e *ConflictError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q: %s", e.EntityType, e.Name, e.Reason)
	}
	return fmt.Sprintf("%s %q already exists", e.EntityType, e.Name)
}

// PersistenceError wraps a failed store call.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The natural-key indexes make concurrent duplicate creates
// surface here instead of silently winning a race.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// WrapStoreError maps a raw store error into the taxonomy: unique violations
// become ConflictError, everything else PersistenceError.
func WrapStoreError(op, entityType, name string, err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return &ConflictError{EntityType: entityType, Name: name}
	}
	return &PersistenceError{Op: op, Err: err}
}
