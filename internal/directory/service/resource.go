package service

import (
	"context"
	"sync"

	"crms/internal/directory/repository"
	"crms/internal/directory/validator"
	"crms/pkg/config"
	apperrors "crms/pkg/errors"
	"crms/pkg/model"
)

type ResourceService interface {
	Create(ctx context.Context, resource *model.Resource) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Resource, int64, error)
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	Update(ctx context.Context, id string, updates *model.ResourceUpdate) (*model.Resource, error)
	Delete(ctx context.Context, id string) error
}

type resourceService struct {
	repo      repository.ResourceRepository
	validator *validator.DirectoryValidator
	cfg       *config.Config
}

func NewResourceService(repo repository.ResourceRepository, v *validator.DirectoryValidator, cfg *config.Config) ResourceService {
	return &resourceService{
		repo:      repo,
		validator: v,
		cfg:       cfg,
	}
}

func (s *resourceService) Create(ctx context.Context, resource *model.Resource) error {
	// New resources come up available; unavailability is an explicit update.
	resource.Status = model.ResourceAvailable

	if err := s.validator.ValidateResource(resource); err != nil {
		s.cfg.Log.Warn("Resource validation failed", "error", err)
		return apperrors.Validation("Resource validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		s.cfg.Log.Error("Failed to create resource", "error", err)
		return apperrors.Internal("Failed to create resource", err)
	}

	s.cfg.Log.Info("Resource created successfully", "id", resource.ID, "type", resource.Type)
	return nil
}

func (s *resourceService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Resource, int64, error) {
	var count int64
	var resources []*model.Resource
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count resources", "error", errCount)
			errCount = apperrors.Internal("Failed to count resources", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		resources, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list resources", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve resources", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return resources, count, nil
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupErr(err, "Resource", id)
	}
	return resource, nil
}

func (s *resourceService) Update(ctx context.Context, id string, updates *model.ResourceUpdate) (*model.Resource, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateResourceUpdate(updates); err != nil {
		s.cfg.Log.Warn("Resource update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeResourceUpdates(existing, updates)
	if err := s.validator.ValidateResource(merged); err != nil {
		return nil, apperrors.Validation("Resource validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update resource", "id", id, "error", err)
		return nil, translateLookupErr(err, "Resource", id)
	}

	s.cfg.Log.Info("Resource updated successfully", "id", id)
	return merged, nil
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Resource ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translateLookupErr(err, "Resource", id)
	}

	s.cfg.Log.Info("Resource deleted successfully", "id", id)
	return nil
}

func (s *resourceService) mergeResourceUpdates(existing *model.Resource, updates *model.ResourceUpdate) *model.Resource {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Type != "" {
		merged.Type = updates.Type
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}
