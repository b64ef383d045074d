package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserProfile struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Headline        string    `gorm:"type:varchar(255)"`
	Location        string    `gorm:"type:varchar(255)"`
	YearsExperience int
	Skills          datatypes.JSON `gorm:"type:jsonb"`
	Experience      string         `gorm:"type:text"`
	SourceSessionId *string        `gorm:"type:uuid"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

type UserSummary struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Summary         string         `gorm:"type:text;not null"`
	Version         int            `gorm:"not null;default:1"`
	SourceSessionId *string        `gorm:"type:uuid"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (UserSummary) TableName() string {
	return "user_summaries"
}

type TargetCriteria struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Roles         datatypes.JSON `gorm:"type:jsonb"`
	Industries    datatypes.JSON `gorm:"type:jsonb"`
	CompanySizes  datatypes.JSON `gorm:"type:jsonb"`
	Locations     datatypes.JSON `gorm:"type:jsonb"`
	ExcludedNames datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (TargetCriteria) TableName() string {
	return "target_criteria"
}
