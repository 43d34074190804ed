// Package users holds the user store: the capability the directory uses to
// read and write user records, with PostgreSQL and in-memory backends.
package users

import (
	"context"

	"github.com/dmitrijs2005/userdirectory/internal/server/models"
	"github.com/dmitrijs2005/userdirectory/internal/timex"
)

// Repository is the user store. Lists are ordered by id. Lookups of a
// missing record return common.ErrorNotFound.
type Repository interface {
	FindAll(ctx context.Context) ([]*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByMail(ctx context.Context, mail string) (*models.User, error)
	// FindByBirthDateRange returns users with from <= birthDate < to.
	FindByBirthDateRange(ctx context.Context, from, to timex.Date) ([]*models.User, error)
	// Save inserts a user without id or replaces the one with user.ID.
	Save(ctx context.Context, user *models.User) (*models.User, error)
	// DeleteByID removes the user if present. A missing id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
