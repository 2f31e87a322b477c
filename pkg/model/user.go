package model

import (
	"fmt"
	"time"
)

// Role is the closed set of requester roles. The booking engine branches on it
// when assigning an initial status, so no other values may exist at rest.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

type User struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string     `json:"email" bson:"email" validate:"required,email"`
	Role      Role       `json:"role" bson:"role" validate:"required,oneof=member admin"`
	Status    UserStatus `json:"status,omitempty" bson:"status" validate:"omitempty,oneof=active inactive"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}
