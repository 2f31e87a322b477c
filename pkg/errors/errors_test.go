package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NotFound("User"),
			want: "NOT_FOUND: User not found",
		},
		{
			name: "with cause",
			err:  Internal("query failed", errors.New("connection reset")),
			want: "INTERNAL_ERROR: query failed (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructorsStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"conflict", Conflict("resource already booked for this slot"), CodeConflict, http.StatusConflict},
		{"invalid transition", InvalidTransition("approved", "pending"), CodeInvalidTransition, http.StatusBadRequest},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("bad payload", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithIDDetails(t *testing.T) {
	err := NotFoundWithID("Resource", "6655")
	if err.Details["entity"] != "Resource" {
		t.Errorf("entity detail = %v, want Resource", err.Details["entity"])
	}
	if err.Details["id"] != "6655" {
		t.Errorf("id detail = %v, want 6655", err.Details["id"])
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Conflict("taken")) {
		t.Error("IsAppError should be true for *AppError")
	}
	if !IsAppError(fmt.Errorf("wrapped: %w", NotFound("User"))) {
		t.Error("IsAppError should see through wrapping")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("IsAppError should be false for plain errors")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, CodeInternal, "write failed", http.StatusInternalServerError)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}
