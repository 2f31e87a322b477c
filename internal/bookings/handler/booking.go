package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"crms/internal/bookings/service"
	apperrors "crms/pkg/errors"
	httputil "crms/pkg/http"
	"crms/pkg/logger"
	"crms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	userID := query.Get("userId")
	resourceID := query.Get("resourceId")

	if userID == "" || resourceID == "" {
		h.writeError(w, "Create", apperrors.InvalidInput("userId and resourceId query parameters are required"))
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), userID, resourceID, &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

// GetAll lists bookings. With a userId or resourceId query parameter it
// narrows to that owner; otherwise it pages through everything.
func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	if userID := query.Get("userId"); userID != "" {
		h.writeList(w, "GetAll", h.service.GetByUser, r, userID)
		return
	}
	if resourceID := query.Get("resourceId"); resourceID != "" {
		h.writeList(w, "GetAll", h.service.GetByResource, r, resourceID)
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *BookingHandler) GetByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.writeList(w, "GetByUser", h.service.GetByUser, r, ps.ByName("userId"))
}

func (h *BookingHandler) GetByResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.writeList(w, "GetByResource", h.service.GetByResource, r, ps.ByName("resourceId"))
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	resourceID := query.Get("resourceId")
	date := query.Get("date")
	timeSlot := query.Get("timeSlot")

	if resourceID == "" || date == "" || timeSlot == "" {
		h.writeError(w, "CheckAvailability",
			apperrors.InvalidInput("resourceId, date and timeSlot query parameters are required"))
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), resourceID, date, timeSlot)
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		h.writeError(w, "UpdateStatus", apperrors.InvalidInput("status query parameter is required"))
		return
	}

	status, err := model.ParseBookingStatus(raw)
	if err != nil {
		h.writeError(w, "UpdateStatus",
			apperrors.InvalidInput("status must be one of: pending, approved, rejected"))
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), status)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *BookingHandler) writeList(
	w http.ResponseWriter,
	handler string,
	fetch func(ctx context.Context, id string) ([]*model.Booking, error),
	r *http.Request,
	id string,
) {
	bookings, err := fetch(r.Context(), id)
	if err != nil {
		h.writeError(w, handler, err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", h.Create)
	router.GET("/api/bookings", h.GetAll)
	router.GET("/api/bookings/id/:id", h.GetByID)
	router.PUT("/api/bookings/id/:id/status", h.UpdateStatus)
	router.GET("/api/bookings/user/:userId", h.GetByUser)
	router.GET("/api/bookings/resource/:resourceId", h.GetByResource)
	router.GET("/api/bookings/check-availability", h.CheckAvailability)
}
