package events

import (
	"context"
	"time"

	"crms/pkg/kafka"
	"crms/pkg/logger"
	"crms/pkg/model"
)

const (
	Topic = "crms.bookings"

	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"

	source = "crms-api"
)

type BookingCreated struct {
	BookingID   string              `json:"booking_id"`
	UserID      string              `json:"user_id"`
	ResourceID  string              `json:"resource_id"`
	BookingDate string              `json:"booking_date"`
	TimeSlot    string              `json:"time_slot"`
	Status      model.BookingStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
}

type BookingStatusChanged struct {
	BookingID  string              `json:"booking_id"`
	ResourceID string              `json:"resource_id"`
	From       model.BookingStatus `json:"from"`
	To         model.BookingStatus `json:"to"`
	ChangedAt  time.Time           `json:"changed_at"`
}

// Publisher emits booking lifecycle events. Publishing is best-effort: a nil
// Publisher or a broker failure never fails the request that triggered it.
type Publisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewPublisher(producer *kafka.Producer, log *logger.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		log:      log,
	}
}

func (p *Publisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	if p == nil || p.producer == nil {
		return
	}

	p.publish(ctx, TypeBookingCreated, booking.ID, BookingCreated{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ResourceID:  booking.ResourceID,
		BookingDate: booking.BookingDate,
		TimeSlot:    booking.TimeSlot,
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
	})
}

func (p *Publisher) BookingStatusChanged(ctx context.Context, booking *model.Booking, from model.BookingStatus) {
	if p == nil || p.producer == nil {
		return
	}

	p.publish(ctx, TypeBookingStatusChanged, booking.ID, BookingStatusChanged{
		BookingID:  booking.ID,
		ResourceID: booking.ResourceID,
		From:       from,
		To:         booking.Status,
		ChangedAt:  booking.UpdatedAt,
	})
}

func (p *Publisher) publish(ctx context.Context, eventType, key string, payload any) {
	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(source).
		Build()
	if err != nil {
		p.log.Error("Failed to build booking event", "event_type", eventType, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", key,
			"error", err,
		)
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
