package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repositories use. pgxmock
// satisfies it too, which keeps repository tests off a live server.
type Database interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// NameRef pairs an entity id with its stored name, for natural-key snapshots.
type NameRef struct {
	ID   uuid.UUID
	Name string
}

// ChildNameRef additionally carries the owning parent id, for child snapshots
// keyed by (parent, name).
type ChildNameRef struct {
	ID       uuid.UUID
	ParentID uuid.UUID
	Name     string
}
