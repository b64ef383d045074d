package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusPending  SubscriptionStatus = "pending"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

type Plan struct {
	Id          uuid.UUID
	Name        string
	Slug        string
	Price       int64 // IDR, midtrans gross amount
	Description string
	AiDailyLimit int
	CreatedAt   time.Time
}

type Subscription struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	PlanId           uuid.UUID
	OrderId          string
	Status           SubscriptionStatus
	CurrentPeriodEnd *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
