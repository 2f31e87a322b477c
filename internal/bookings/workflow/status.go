// Package workflow governs the booking status lifecycle: which status a new
// booking starts in and which transitions are legal afterwards.
//
// pending -> approved and pending -> rejected are the only legal transitions;
// approved and rejected are terminal. A rejected booking frees its slot for
// re-request, so reopening one would silently break slot uniqueness.
package workflow

import (
	apperrors "crms/pkg/errors"
	"crms/pkg/model"
)

// InitialStatus decides the status a booking is created in. Administrators
// bypass manual review and get immediate approval.
func InitialStatus(role model.Role) model.BookingStatus {
	switch role {
	case model.RoleAdmin:
		return model.BookingApproved
	default:
		return model.BookingPending
	}
}

// IsTerminal reports whether a status permits no further transitions.
func IsTerminal(status model.BookingStatus) bool {
	return status == model.BookingApproved || status == model.BookingRejected
}

// Validate checks that moving a booking from one status to another is legal.
// Setting the same status again is treated as a no-op and allowed.
func Validate(from, to model.BookingStatus) error {
	if from == to {
		return nil
	}

	if from == model.BookingPending {
		switch to {
		case model.BookingApproved, model.BookingRejected:
			return nil
		}
	}

	return apperrors.InvalidTransition(string(from), string(to))
}
