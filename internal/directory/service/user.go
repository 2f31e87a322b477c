package service

import (
	"context"
	"errors"
	"sync"

	directoryerrors "crms/internal/directory/errors"
	"crms/internal/directory/repository"
	"crms/internal/directory/validator"
	"crms/pkg/config"
	apperrors "crms/pkg/errors"
	"crms/pkg/model"
)

type UserService interface {
	Create(ctx context.Context, user *model.User) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.DirectoryValidator
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, v *validator.DirectoryValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: v,
		cfg:       cfg,
	}
}

func (s *userService) Create(ctx context.Context, user *model.User) error {
	// New accounts start active; lifecycle changes are out of band.
	user.Status = model.UserActive

	if err := s.validator.ValidateUser(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, directoryerrors.ErrDuplicateEmail) {
			return apperrors.Conflict("Email already registered")
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created successfully", "id", user.ID, "role", user.Role)
	return nil
}

func (s *userService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error) {
	var count int64
	var users []*model.User
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count users", "error", errCount)
			errCount = apperrors.Internal("Failed to count users", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		users, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list users", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve users", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return users, count, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupErr(err, "User", id)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, directoryerrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		s.cfg.Log.Error("Failed to find user by email", "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}
