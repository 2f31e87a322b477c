package model

import "time"

// SlotLock is an advisory lock serializing concurrent creation attempts for one
// resource/date/slot triple. The unique _id makes the second acquirer fail fast;
// a TTL index reaps stale locks.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
