package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GeneratedMessage struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ContactId       *uuid.UUID `gorm:"type:uuid;index"`
	Subject         string     `gorm:"type:varchar(255)"`
	Body            string     `gorm:"type:text;not null"`
	Version         int        `gorm:"not null;default:1"`
	Selected        bool       `gorm:"default:false"`
	SourceSessionId *string    `gorm:"type:uuid"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (GeneratedMessage) TableName() string {
	return "generated_messages"
}
