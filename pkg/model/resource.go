package model

import "time"

type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "available"
	ResourceUnavailable ResourceStatus = "unavailable"
)

// Resource is a bookable asset: a room, a machine, a court. The booking engine
// only reads it; the directory owns its lifecycle.
type Resource struct {
	ID        string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string         `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Type      string         `json:"type" bson:"type" validate:"required,min=2,max=50"`
	Capacity  int            `json:"capacity" bson:"capacity" validate:"required,min=1,max=1000"`
	Status    ResourceStatus `json:"status,omitempty" bson:"status" validate:"omitempty,oneof=available unavailable"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ResourceUpdate carries the mutable resource fields for PUT requests.
type ResourceUpdate struct {
	Name     string         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Type     string         `json:"type,omitempty" validate:"omitempty,min=2,max=50"`
	Capacity *int           `json:"capacity,omitempty" validate:"omitempty,min=1,max=1000"`
	Status   ResourceStatus `json:"status,omitempty" validate:"omitempty,oneof=available unavailable"`
}
