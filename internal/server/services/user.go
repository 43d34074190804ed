// Package services contains server-side business logic. This file implements
// UserService, which orchestrates the directory operations: lookups, range
// queries and the validate-then-save sequence for create, update and patch.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	"github.com/dmitrijs2005/userdirectory/internal/logging"
	"github.com/dmitrijs2005/userdirectory/internal/server/models"
	"github.com/dmitrijs2005/userdirectory/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userdirectory/internal/server/repositories/users"
	"github.com/dmitrijs2005/userdirectory/internal/server/validation"
	"github.com/dmitrijs2005/userdirectory/internal/timex"
)

// UserService provides the user directory operations:
// - List / ListByBirthDateRange / Get: read-only lookups
// - Create / Update / Patch: validated writes, each one atomic
// - Delete: idempotent removal
type UserService struct {
	repomanager repomanager.RepositoryManager
	validator   *validation.Validator
	logger      logging.Logger
}

// NewUserService constructs a UserService over the given storage backend.
func NewUserService(m repomanager.RepositoryManager, v *validation.Validator, logger logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		validator:   v,
		logger:      logger.With("module", "services.users"),
	}
}

// List returns every user in id order.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	list, err := s.repomanager.Users().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// ListByBirthDateRange returns users with from <= birthDate < to.
// from after to is rejected with common.ErrInvalidRange.
func (s *UserService) ListByBirthDateRange(ctx context.Context, from, to timex.Date) ([]*models.User, error) {
	if from.After(to) {
		return nil, common.ErrInvalidRange
	}

	list, err := s.repomanager.Users().FindByBirthDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing users by range: %w", err)
	}
	return list, nil
}

// Get returns the user with the given id or common.ErrUnknownID.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownID
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// Create validates and stores a new user. Any id in the input is ignored.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	candidate := user.Clone()
	candidate.ID = 0

	var saved *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		var err error
		saved, err = s.validateAndSave(ctx, repo, candidate, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user created", "id", saved.ID)
	return saved, nil
}

// Update replaces the user stored under id. When no such user exists the
// candidate is stored as a new record with a fresh id.
func (s *UserService) Update(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	candidate := user.Clone()

	var saved *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		current, err := repo.FindByID(ctx, id)
		switch {
		case err == nil:
			candidate.ID = current.ID
		case errors.Is(err, common.ErrorNotFound):
			candidate.ID = 0
		default:
			return fmt.Errorf("error getting user: %w", err)
		}

		saved, err = s.validateAndSave(ctx, repo, candidate, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user updated", "id", saved.ID)
	return saved, nil
}

// Patch merges p into the stored user and saves the result after full
// validation. An unknown id is rejected with common.ErrUnknownUser.
func (s *UserService) Patch(ctx context.Context, id int64, p *models.UserPatch) (*models.User, error) {
	var saved *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUnknownUser
			}
			return fmt.Errorf("error getting user: %w", err)
		}

		saved, err = s.validateAndSave(ctx, repo, models.Merge(current, p), true)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user patched", "id", saved.ID)
	return saved, nil
}

// Delete removes the user if present.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Users().DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	s.logger.Debug(ctx, "user deleted", "id", id)
	return nil
}

// Ping reports whether the storage backend is reachable.
func (s *UserService) Ping(ctx context.Context) error {
	return s.repomanager.Ping(ctx)
}

func (s *UserService) validateAndSave(ctx context.Context, repo users.Repository, candidate *models.User, additionalMailCheck bool) (*models.User, error) {
	if err := s.validator.Validate(ctx, repo, candidate, additionalMailCheck); err != nil {
		return nil, err
	}

	saved, err := repo.Save(ctx, candidate)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateMail) {
			return nil, err
		}
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownID
		}
		return nil, fmt.Errorf("error saving user: %w", err)
	}
	return saved, nil
}
