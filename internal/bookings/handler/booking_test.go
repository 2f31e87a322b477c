package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "crms/pkg/errors"
	httputil "crms/pkg/http"
	"crms/pkg/logger"
	"crms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	CreateFn            func(ctx context.Context, userID, resourceID string, req *model.BookingRequest) (*model.Booking, error)
	GetByIDFn           func(ctx context.Context, id string) (*model.Booking, error)
	GetAllFn            func(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByUserFn         func(ctx context.Context, userID string) ([]*model.Booking, error)
	GetByResourceFn     func(ctx context.Context, resourceID string) ([]*model.Booking, error)
	CheckAvailabilityFn func(ctx context.Context, resourceID, date, timeSlot string) (*model.Availability, error)
	UpdateStatusFn      func(ctx context.Context, bookingID string, status model.BookingStatus) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, userID, resourceID string, req *model.BookingRequest) (*model.Booking, error) {
	return m.CreateFn(ctx, userID, resourceID, req)
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	return m.GetAllFn(ctx, limit, offset)
}

func (m *mockBookingService) GetByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return m.GetByUserFn(ctx, userID)
}

func (m *mockBookingService) GetByResource(ctx context.Context, resourceID string) ([]*model.Booking, error) {
	return m.GetByResourceFn(ctx, resourceID)
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, resourceID, date, timeSlot string) (*model.Availability, error) {
	return m.CheckAvailabilityFn(ctx, resourceID, date, timeSlot)
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, bookingID string, status model.BookingStatus) (*model.Booking, error) {
	return m.UpdateStatusFn(ctx, bookingID, status)
}

func newTestRouter(t *testing.T, svc *mockBookingService) *httprouter.Router {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestCreateBooking(t *testing.T) {
	svc := &mockBookingService{
		CreateFn: func(ctx context.Context, userID, resourceID string, req *model.BookingRequest) (*model.Booking, error) {
			return &model.Booking{
				ID:          "665f1f77bcf86cd799439013",
				UserID:      userID,
				ResourceID:  resourceID,
				BookingDate: req.BookingDate,
				TimeSlot:    req.TimeSlot,
				Status:      model.BookingPending,
			}, nil
		},
	}
	router := newTestRouter(t, svc)

	body := `{"booking_date":"2024-06-01","time_slot":"09:00-10:00"}`
	req := httptest.NewRequest(http.MethodPost,
		"/api/bookings?userId=665f1f77bcf86cd799439011&resourceId=665f1f77bcf86cd799439012",
		strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Status != model.BookingPending {
		t.Errorf("status = %q, want %q", resp.Data.Status, model.BookingPending)
	}
}

func TestCreateBooking_MissingQueryParams(t *testing.T) {
	router := newTestRouter(t, &mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings",
		strings.NewReader(`{"booking_date":"2024-06-01","time_slot":"09:00-10:00"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	router := newTestRouter(t, &mockBookingService{})

	req := httptest.NewRequest(http.MethodPost,
		"/api/bookings?userId=u&resourceId=r", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateBooking_ConflictMapsTo409(t *testing.T) {
	svc := &mockBookingService{
		CreateFn: func(ctx context.Context, userID, resourceID string, req *model.BookingRequest) (*model.Booking, error) {
			return nil, apperrors.Conflict("Resource already booked for this slot")
		},
	}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost,
		"/api/bookings?userId=u&resourceId=r",
		strings.NewReader(`{"booking_date":"2024-06-01","time_slot":"09:00-10:00"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var resp httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Code != apperrors.CodeConflict {
		t.Errorf("error code = %q, want %q", resp.Code, apperrors.CodeConflict)
	}
}

func TestGetBookings_FilterRouting(t *testing.T) {
	svc := &mockBookingService{
		GetAllFn: func(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
			return []*model.Booking{{ID: "1"}, {ID: "2"}}, 2, nil
		},
		GetByUserFn: func(ctx context.Context, userID string) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "1", UserID: userID}}, nil
		},
		GetByResourceFn: func(ctx context.Context, resourceID string) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "2", ResourceID: resourceID}}, nil
		},
	}
	router := newTestRouter(t, svc)

	tests := []struct {
		name string
		url  string
	}{
		{name: "unfiltered list", url: "/api/bookings"},
		{name: "filter by user query", url: "/api/bookings?userId=u1"},
		{name: "filter by resource query", url: "/api/bookings?resourceId=r1"},
		{name: "by user path", url: "/api/bookings/user/u1"},
		{name: "by resource path", url: "/api/bookings/resource/r1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
			}
		})
	}
}

func TestGetBookingByID_NotFound(t *testing.T) {
	svc := &mockBookingService{
		GetByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		},
	}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/id/665f1f77bcf86cd799439013", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc := &mockBookingService{
		CheckAvailabilityFn: func(ctx context.Context, resourceID, date, timeSlot string) (*model.Availability, error) {
			return &model.Availability{
				Available:  true,
				ResourceID: resourceID,
				Date:       date,
				TimeSlot:   timeSlot,
			}, nil
		},
	}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/bookings/check-availability?resourceId=r1&date=2024-06-01&timeSlot=09:00-10:00", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Data model.Availability `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Data.Available {
		t.Error("available = false, want true")
	}
}

func TestCheckAvailability_MissingParams(t *testing.T) {
	router := newTestRouter(t, &mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/check-availability?resourceId=r1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		serviceErr error
		wantCode   int
	}{
		{name: "approve", status: "approved", wantCode: http.StatusOK},
		{name: "unknown status value", status: "cancelled", wantCode: http.StatusBadRequest},
		{name: "missing status", status: "", wantCode: http.StatusBadRequest},
		{
			name:       "illegal transition",
			status:     "approved",
			serviceErr: apperrors.InvalidTransition("rejected", "approved"),
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "unknown booking",
			status:     "approved",
			serviceErr: apperrors.NotFoundWithID("Booking", "x"),
			wantCode:   http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				UpdateStatusFn: func(ctx context.Context, bookingID string, status model.BookingStatus) (*model.Booking, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &model.Booking{ID: bookingID, Status: status}, nil
				},
			}
			router := newTestRouter(t, svc)

			url := "/api/bookings/id/665f1f77bcf86cd799439013/status"
			if tt.status != "" {
				url += "?status=" + tt.status
			}
			req := httptest.NewRequest(http.MethodPut, url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}
