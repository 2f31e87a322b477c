package workflow

import (
	"testing"

	apperrors "crms/pkg/errors"
	"crms/pkg/model"
)

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		name string
		role model.Role
		want model.BookingStatus
	}{
		{"admin gets immediate approval", model.RoleAdmin, model.BookingApproved},
		{"member awaits review", model.RoleMember, model.BookingPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialStatus(tt.role); got != tt.want {
				t.Errorf("InitialStatus(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		from    model.BookingStatus
		to      model.BookingStatus
		wantErr bool
	}{
		{"pending to approved", model.BookingPending, model.BookingApproved, false},
		{"pending to rejected", model.BookingPending, model.BookingRejected, false},
		{"same status is a no-op", model.BookingApproved, model.BookingApproved, false},
		{"approved is terminal", model.BookingApproved, model.BookingPending, true},
		{"approved cannot be rejected", model.BookingApproved, model.BookingRejected, true},
		{"rejected is terminal", model.BookingRejected, model.BookingApproved, true},
		{"rejected cannot reopen", model.BookingRejected, model.BookingPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.from, tt.to)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate(%q, %q) = nil, want error", tt.from, tt.to)
				}
				appErr := apperrors.AsAppError(err)
				if appErr == nil {
					t.Fatalf("Validate(%q, %q) returned %T, want *AppError", tt.from, tt.to, err)
				}
				if appErr.Code != apperrors.CodeInvalidTransition {
					t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeInvalidTransition)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate(%q, %q) = %v, want nil", tt.from, tt.to, err)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(model.BookingPending) {
		t.Error("pending should not be terminal")
	}
	if !IsTerminal(model.BookingApproved) {
		t.Error("approved should be terminal")
	}
	if !IsTerminal(model.BookingRejected) {
		t.Error("rejected should be terminal")
	}
}
