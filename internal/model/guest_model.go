package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GuestSession struct {
	SessionId         string         `gorm:"type:uuid;primaryKey"`
	GuestProfile      datatypes.JSON `gorm:"type:jsonb"`
	GuestSummary      datatypes.JSON `gorm:"type:jsonb"`
	GuestContact      datatypes.JSON `gorm:"type:jsonb"`
	GeneratedMessages datatypes.JSON `gorm:"type:jsonb"`
	SelectedMessage   datatypes.JSON `gorm:"type:jsonb"`
	SelectedVersion   *int
	LinkedUserId      *uuid.UUID `gorm:"type:uuid;index"`
	LinkedAt          *time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (GuestSession) TableName() string {
	return "guest_sessions"
}

// LinkAttempt records one reconciliation outcome per (session, user) pair.
// The composite unique index is what makes MarkSuccess an upsert target.
type LinkAttempt struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string    `gorm:"type:uuid;not null;uniqueIndex:ux_link_session_user"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_link_session_user"`
	Origin    string    `gorm:"type:varchar(50);not null"`
	Linked    bool      `gorm:"default:false"`
	Success   bool      `gorm:"default:false"`
	Attempts  int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (LinkAttempt) TableName() string {
	return "link_attempts"
}
