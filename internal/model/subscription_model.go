package model

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Slug         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Price        int64     `gorm:"not null;default:0"`
	Description  string    `gorm:"type:text"`
	AiDailyLimit int       `gorm:"not null;default:10"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Plan) TableName() string {
	return "plans"
}

type Subscription struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId           uuid.UUID `gorm:"type:uuid;not null"`
	OrderId          string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Status           string    `gorm:"type:varchar(50);not null;default:'pending'"`
	CurrentPeriodEnd *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
