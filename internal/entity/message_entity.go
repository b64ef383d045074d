package entity

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedMessage is one drafted outreach message version. Several
// versions share a generation batch; at most one is selected.
type GeneratedMessage struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	ContactId       *uuid.UUID
	Subject         string
	Body            string
	Version         int
	Selected        bool
	SourceSessionId *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
