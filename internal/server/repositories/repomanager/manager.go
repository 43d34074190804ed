// Package repomanager vends the user store for the configured backend and
// runs units of work against it, inside a transaction where the backend
// supports one.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/userdirectory/internal/server/repositories/users"
)

// RepositoryManager owns the storage backend.
type RepositoryManager interface {
	// RunMigrations brings the schema up to date. No-op for memory.
	RunMigrations(ctx context.Context) error

	// Users returns a repository outside any transaction.
	Users() users.Repository

	// WithTx runs fn with a repository whose reads and writes form one
	// atomic unit. A non-nil error from fn discards its writes.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
