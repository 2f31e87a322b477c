package model

import (
	"fmt"
	"time"
)

// BookingStatus is the closed status domain for bookings. No other value is
// valid at rest.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingApproved, BookingRejected:
		return BookingStatus(s), nil
	}
	return "", fmt.Errorf("unknown booking status: %q", s)
}

// Booking claims one resource/date/slot triple. At most one booking in a
// non-rejected status may hold a given triple; the Active marker backs the
// partial unique index that enforces this in storage.
type Booking struct {
	ID          string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID      string        `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	ResourceID  string        `json:"resource_id" bson:"resource_id" validate:"required,mongodb"`
	BookingDate string        `json:"booking_date" bson:"booking_date" validate:"required,datetime=2006-01-02"`
	TimeSlot    string        `json:"time_slot" bson:"time_slot" validate:"required,timeslot"`
	Status      BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending approved rejected"`
	Active      bool          `json:"-" bson:"active"`
	User        *User         `json:"user,omitempty" bson:"user,omitempty"`
	Resource    *Resource     `json:"resource,omitempty" bson:"resource,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty" bson:"updated_at,omitempty" validate:"omitempty"`
}

// BookingRequest is the client-supplied part of a booking; user and resource
// arrive as query parameters and are resolved by the engine.
type BookingRequest struct {
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	TimeSlot    string `json:"time_slot" validate:"required,timeslot"`
}

// Availability reports whether a resource/date/slot triple is free, using
// exactly the conflict rule booking creation uses.
type Availability struct {
	Available  bool   `json:"available"`
	ResourceID string `json:"resource_id"`
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
}
