package service

import (
	"context"
	"testing"

	directoryerrors "crms/internal/directory/errors"
	"crms/internal/directory/repository"
	"crms/internal/directory/validator"
	"crms/pkg/config"
	apperrors "crms/pkg/errors"
	"crms/pkg/logger"
	"crms/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockUserRepository struct {
	CreateFn      func(ctx context.Context, user *model.User) error
	FindByIDFn    func(ctx context.Context, id string) (*model.User, error)
	FindByEmailFn func(ctx context.Context, email string) (*model.User, error)
	FindAllFn     func(ctx context.Context, limit int, offset int64) ([]*model.User, error)
	CountFn       func(ctx context.Context) (int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.FindByEmailFn(ctx, email)
}

func (m *mockUserRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.User, error) {
	return m.FindAllFn(ctx, limit, offset)
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	return m.CountFn(ctx)
}

type mockResourceRepository struct {
	CreateFn   func(ctx context.Context, resource *model.Resource) error
	FindByIDFn func(ctx context.Context, id string) (*model.Resource, error)
	FindAllFn  func(ctx context.Context, limit int, offset int64) ([]*model.Resource, error)
	UpdateFn   func(ctx context.Context, id string, resource *model.Resource) (*mongo.UpdateResult, error)
	DeleteFn   func(ctx context.Context, id string) error
	CountFn    func(ctx context.Context) (int64, error)
}

func (m *mockResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	return m.CreateFn(ctx, resource)
}

func (m *mockResourceRepository) FindByID(ctx context.Context, id string) (*model.Resource, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockResourceRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Resource, error) {
	return m.FindAllFn(ctx, limit, offset)
}

func (m *mockResourceRepository) Update(ctx context.Context, id string, resource *model.Resource) (*mongo.UpdateResult, error) {
	return m.UpdateFn(ctx, id, resource)
}

func (m *mockResourceRepository) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockResourceRepository) Count(ctx context.Context) (int64, error) {
	return m.CountFn(ctx)
}

var (
	_ repository.UserRepository     = (*mockUserRepository)(nil)
	_ repository.ResourceRepository = (*mockResourceRepository)(nil)
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Service: "test"}),
	}
}

func TestUserCreate(t *testing.T) {
	cfg := testConfig(t)
	v := validator.NewDirectoryValidator(cfg.Log)

	t.Run("valid user starts active", func(t *testing.T) {
		var stored *model.User
		repo := &mockUserRepository{
			CreateFn: func(ctx context.Context, user *model.User) error {
				stored = user
				return nil
			},
		}

		svc := NewUserService(repo, v, cfg)
		user := &model.User{Name: "Ada Lovelace", Email: "ada@example.com", Role: model.RoleMember}
		if err := svc.Create(context.Background(), user); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if stored == nil || stored.Status != model.UserActive {
			t.Errorf("new user status = %v, want %q", stored, model.UserActive)
		}
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFn: func(ctx context.Context, user *model.User) error {
				return directoryerrors.ErrDuplicateEmail
			},
		}

		svc := NewUserService(repo, v, cfg)
		err := svc.Create(context.Background(), &model.User{
			Name: "Ada Lovelace", Email: "ada@example.com", Role: model.RoleMember,
		})

		appErr := apperrors.AsAppError(err)
		if appErr == nil || appErr.Code != apperrors.CodeConflict {
			t.Fatalf("Create() with duplicate email = %v, want %s", err, apperrors.CodeConflict)
		}
	})

	t.Run("invalid role rejected before store", func(t *testing.T) {
		called := false
		repo := &mockUserRepository{
			CreateFn: func(ctx context.Context, user *model.User) error {
				called = true
				return nil
			},
		}

		svc := NewUserService(repo, v, cfg)
		err := svc.Create(context.Background(), &model.User{
			Name: "Ada Lovelace", Email: "ada@example.com", Role: "superuser",
		})

		appErr := apperrors.AsAppError(err)
		if appErr == nil || appErr.Code != apperrors.CodeValidation {
			t.Fatalf("Create() with unknown role = %v, want %s", err, apperrors.CodeValidation)
		}
		if called {
			t.Error("invalid user must not reach the repository")
		}
	})
}

func TestUserGetByID(t *testing.T) {
	cfg := testConfig(t)
	v := validator.NewDirectoryValidator(cfg.Log)

	repo := &mockUserRepository{
		FindByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, directoryerrors.ErrNotFound
		},
	}

	svc := NewUserService(repo, v, cfg)
	_, err := svc.GetByID(context.Background(), "665f1f77bcf86cd799439011")

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("GetByID() on missing user = %v, want %s", err, apperrors.CodeNotFound)
	}
	if appErr.HTTPStatus != 404 {
		t.Errorf("not found HTTP status = %d, want 404", appErr.HTTPStatus)
	}
}

func TestUserGetByEmail(t *testing.T) {
	cfg := testConfig(t)
	v := validator.NewDirectoryValidator(cfg.Log)

	repo := &mockUserRepository{
		FindByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email == "ada@example.com" {
				return &model.User{ID: "665f1f77bcf86cd799439011", Email: email}, nil
			}
			return nil, directoryerrors.ErrNotFound
		},
	}

	svc := NewUserService(repo, v, cfg)

	user, err := svc.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if user.ID != "665f1f77bcf86cd799439011" {
		t.Errorf("GetByEmail() id = %q", user.ID)
	}

	_, err = svc.GetByEmail(context.Background(), "nobody@example.com")
	if appErr := apperrors.AsAppError(err); appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("GetByEmail() on unknown address = %v, want %s", err, apperrors.CodeNotFound)
	}

	if _, err := svc.GetByEmail(context.Background(), ""); err == nil {
		t.Error("GetByEmail() with empty email should fail")
	}
}

func TestResourceUpdate(t *testing.T) {
	cfg := testConfig(t)
	v := validator.NewDirectoryValidator(cfg.Log)

	existing := &model.Resource{
		ID:       "665f1f77bcf86cd799439012",
		Name:     "Room A",
		Type:     "meeting_room",
		Capacity: 8,
		Status:   model.ResourceAvailable,
	}

	repo := &mockResourceRepository{
		FindByIDFn: func(ctx context.Context, id string) (*model.Resource, error) {
			clone := *existing
			return &clone, nil
		},
		UpdateFn: func(ctx context.Context, id string, resource *model.Resource) (*mongo.UpdateResult, error) {
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}

	svc := NewResourceService(repo, v, cfg)

	t.Run("partial update merges over existing", func(t *testing.T) {
		capacity := 12
		updated, err := svc.Update(context.Background(), existing.ID, &model.ResourceUpdate{
			Capacity: &capacity,
			Status:   model.ResourceUnavailable,
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Capacity != 12 || updated.Status != model.ResourceUnavailable {
			t.Errorf("Update() = capacity %d status %q, want 12 and %q",
				updated.Capacity, updated.Status, model.ResourceUnavailable)
		}
		if updated.Name != "Room A" {
			t.Errorf("untouched field changed: name = %q", updated.Name)
		}
	})

	t.Run("merged result is revalidated", func(t *testing.T) {
		capacity := 0
		_, err := svc.Update(context.Background(), existing.ID, &model.ResourceUpdate{Capacity: &capacity})
		appErr := apperrors.AsAppError(err)
		if appErr == nil || appErr.Code != apperrors.CodeValidation {
			t.Fatalf("Update() with zero capacity = %v, want %s", err, apperrors.CodeValidation)
		}
	})
}

func TestLookupTranslatesSentinels(t *testing.T) {
	users := &mockUserRepository{
		FindByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, directoryerrors.ErrNotFound
		},
	}
	resources := &mockResourceRepository{
		FindByIDFn: func(ctx context.Context, id string) (*model.Resource, error) {
			return nil, directoryerrors.ErrInvalidID
		},
	}

	lookup := NewLookup(users, resources)

	_, err := lookup.FindUser(context.Background(), "665f1f77bcf86cd799439011")
	if appErr := apperrors.AsAppError(err); appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("FindUser() on missing user = %v, want %s", err, apperrors.CodeNotFound)
	}

	_, err = lookup.FindResource(context.Background(), "bad-id")
	if appErr := apperrors.AsAppError(err); appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("FindResource() with malformed ID = %v, want %s", err, apperrors.CodeInvalidInput)
	}

	if _, err := lookup.FindUser(context.Background(), ""); err == nil {
		t.Error("FindUser() with empty ID should fail")
	}
}
