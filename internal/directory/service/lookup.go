package service

import (
	"context"
	"errors"

	directoryerrors "crms/internal/directory/errors"
	"crms/internal/directory/repository"
	apperrors "crms/pkg/errors"
	"crms/pkg/model"
)

// Lookup is the directory contract the booking engine depends on: resolve an
// identifier to its current record, or fail with a NotFound condition.
type Lookup interface {
	FindUser(ctx context.Context, id string) (*model.User, error)
	FindResource(ctx context.Context, id string) (*model.Resource, error)
}

type directoryLookup struct {
	users     repository.UserRepository
	resources repository.ResourceRepository
}

func NewLookup(users repository.UserRepository, resources repository.ResourceRepository) Lookup {
	return &directoryLookup{
		users:     users,
		resources: resources,
	}
}

func (l *directoryLookup) FindUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := l.users.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupErr(err, "User", id)
	}
	return user, nil
}

func (l *directoryLookup) FindResource(ctx context.Context, id string) (*model.Resource, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	resource, err := l.resources.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupErr(err, "Resource", id)
	}
	return resource, nil
}

func translateLookupErr(err error, entity, id string) error {
	switch {
	case errors.Is(err, directoryerrors.ErrNotFound):
		return apperrors.NotFoundWithID(entity, id)
	case errors.Is(err, directoryerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid " + entity + " ID format")
	default:
		return apperrors.Internal("Failed to resolve "+entity, err)
	}
}
