package validator

import (
	"testing"

	"crms/pkg/logger"
	"crms/pkg/model"
)

func newTestValidator(t *testing.T) *BookingValidator {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	return NewBookingValidator(log)
}

func TestValidateRequest(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name    string
		req     model.BookingRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			req:     model.BookingRequest{BookingDate: "2024-06-01", TimeSlot: "09:00-10:00"},
			wantErr: false,
		},
		{
			name:    "missing date",
			req:     model.BookingRequest{TimeSlot: "09:00-10:00"},
			wantErr: true,
		},
		{
			name:    "missing slot",
			req:     model.BookingRequest{BookingDate: "2024-06-01"},
			wantErr: true,
		},
		{
			name:    "date not ISO",
			req:     model.BookingRequest{BookingDate: "01/06/2024", TimeSlot: "09:00-10:00"},
			wantErr: true,
		},
		{
			name:    "slot missing end",
			req:     model.BookingRequest{BookingDate: "2024-06-01", TimeSlot: "09:00"},
			wantErr: true,
		},
		{
			name:    "slot hour out of range",
			req:     model.BookingRequest{BookingDate: "2024-06-01", TimeSlot: "25:00-26:00"},
			wantErr: true,
		},
		{
			name:    "slot with spaces",
			req:     model.BookingRequest{BookingDate: "2024-06-01", TimeSlot: "09:00 - 10:00"},
			wantErr: true,
		},
		{
			name:    "midnight boundary slot",
			req:     model.BookingRequest{BookingDate: "2024-06-01", TimeSlot: "23:00-23:59"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBooking(t *testing.T) {
	v := newTestValidator(t)

	valid := model.Booking{
		UserID:      "665f1f77bcf86cd799439011",
		ResourceID:  "665f1f77bcf86cd799439012",
		BookingDate: "2024-06-01",
		TimeSlot:    "09:00-10:00",
		Status:      model.BookingPending,
	}

	if err := v.Validate(&valid); err != nil {
		t.Fatalf("Validate() on valid booking = %v, want nil", err)
	}

	badStatus := valid
	badStatus.Status = "cancelled"
	if err := v.Validate(&badStatus); err == nil {
		t.Error("Validate() should reject a status outside the closed domain")
	}

	badUser := valid
	badUser.UserID = "42"
	if err := v.Validate(&badUser); err == nil {
		t.Error("Validate() should reject a malformed user ID")
	}
}
