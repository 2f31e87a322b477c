package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "crms/internal/bookings/errors"
	"crms/internal/bookings/events"
	"crms/internal/bookings/repository"
	"crms/internal/bookings/validator"
	"crms/internal/bookings/workflow"
	directory "crms/internal/directory/service"
	"crms/pkg/config"
	apperrors "crms/pkg/errors"
	"crms/pkg/metrics"
	"crms/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, userID, resourceID string, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	GetByResource(ctx context.Context, resourceID string) ([]*model.Booking, error)
	CheckAvailability(ctx context.Context, resourceID, date, timeSlot string) (*model.Availability, error)
	UpdateStatus(ctx context.Context, bookingID string, status model.BookingStatus) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	directory directory.Lookup
	validator *validator.BookingValidator
	publisher *events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	dir directory.Lookup,
	v *validator.BookingValidator,
	publisher *events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		directory: dir,
		validator: v,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, userID, resourceID string, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	user, err := s.directory.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resource, err := s.directory.FindResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		UserID:      user.ID,
		ResourceID:  resource.ID,
		BookingDate: req.BookingDate,
		TimeSlot:    req.TimeSlot,
		Status:      workflow.InitialStatus(user.Role),
		User:        user,
		Resource:    resource,
	}

	// Advisory lock serializes concurrent attempts on the same triple so most
	// races fail fast here instead of on the unique index.
	lockID, err := s.acquireSlotLock(ctx, booking.ResourceID, booking.BookingDate, booking.TimeSlot)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		taken, err := s.repo.ExistsSlot(sessCtx, booking.ResourceID, booking.BookingDate, booking.TimeSlot, model.BookingRejected)
		if err != nil {
			return apperrors.Internal("Failed to check slot occupancy", err)
		}
		if taken {
			return apperrors.Conflict("Resource already booked for this slot")
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrSlotTaken) {
				return apperrors.Conflict("Resource already booked for this slot")
			}
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		if appErr := apperrors.AsAppError(err); appErr != nil && appErr.Code == apperrors.CodeConflict {
			metrics.BookingConflict()
			s.cfg.Log.Info("Booking creation conflict",
				"resource_id", booking.ResourceID,
				"booking_date", booking.BookingDate,
				"time_slot", booking.TimeSlot,
			)
		} else {
			s.cfg.Log.Error("Failed to create booking", "error", err)
		}
		return nil, err
	}

	metrics.BookingCreated(string(booking.Status))
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", booking.UserID,
		"resource_id", booking.ResourceID,
		"booking_date", booking.BookingDate,
		"time_slot", booking.TimeSlot,
		"status", booking.Status,
	)
	s.publisher.BookingCreated(ctx, booking)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateRepoErr(err, id)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by user", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetByResource(ctx context.Context, resourceID string) ([]*model.Booking, error) {
	if resourceID == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	bookings, err := s.repo.FindByResource(ctx, resourceID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by resource", "resource_id", resourceID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, resourceID, date, timeSlot string) (*model.Availability, error) {
	req := &model.BookingRequest{BookingDate: date, TimeSlot: timeSlot}
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, apperrors.Validation("Availability query validation failed", map[string]any{"error": err.Error()})
	}

	resource, err := s.directory.FindResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsSlot(ctx, resource.ID, date, timeSlot, model.BookingRejected)
	if err != nil {
		s.cfg.Log.Error("Failed to check availability", "resource_id", resourceID, "error", err)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	metrics.AvailabilityChecked(!taken)
	return &model.Availability{
		Available:  !taken,
		ResourceID: resource.ID,
		Date:       date,
		TimeSlot:   timeSlot,
	}, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, status model.BookingStatus) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := workflow.Validate(booking.Status, status); err != nil {
		s.cfg.Log.Warn("Illegal booking status transition",
			"id", bookingID,
			"from", booking.Status,
			"to", status,
		)
		return nil, err
	}

	from := booking.Status
	if err := s.repo.UpdateStatus(ctx, bookingID, status); err != nil {
		s.cfg.Log.Error("Failed to update booking status", "id", bookingID, "error", err)
		return nil, s.translateRepoErr(err, bookingID)
	}

	booking.Status = status
	booking.Active = status != model.BookingRejected
	booking.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	metrics.StatusTransition(string(status))
	s.cfg.Log.Info("Booking status updated", "id", bookingID, "from", from, "to", status)
	s.publisher.BookingStatusChanged(ctx, booking, from)
	return booking, nil
}

func (s *bookingService) translateRepoErr(err error, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Internal("Booking operation failed", err)
	}
}

// acquireSlotLock creates an advisory lock for one resource/date/slot triple.
// Returns a Conflict condition when another request holds the lock.
func (s *bookingService) acquireSlotLock(ctx context.Context, resourceID, date, timeSlot string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s_%s", resourceID, date, timeSlot)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
