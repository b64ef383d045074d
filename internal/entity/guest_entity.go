package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GuestSession accumulates everything a visitor produces before
// signing up. Payloads are opaque JSON at this layer; typed views live
// in the dto package. A session is created on first contact, mutated by
// guest-flow actions and cleared only on explicit sign-out or after a
// confirmed migration cleanup.
type GuestSession struct {
	SessionId         string
	GuestProfile      json.RawMessage
	GuestSummary      json.RawMessage
	GuestContact      json.RawMessage
	GeneratedMessages json.RawMessage
	SelectedMessage   json.RawMessage
	SelectedVersion   *int
	LinkedUserId      *uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LinkAttempt is the audit trail and idempotency guard for one
// (session, user) pair. At most one successful link is recorded per
// pair; the record is check-then-set, never blind-set.
type LinkAttempt struct {
	Id        uuid.UUID
	SessionId string
	UserId    uuid.UUID
	Origin    string
	Linked    bool
	Success   bool
	Attempts  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
