package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Price        int64     `json:"price"`
	Description  string    `json:"description"`
	AiDailyLimit int       `json:"ai_daily_limit"`
}

type CheckoutRequest struct {
	PlanSlug string `json:"plan_slug" validate:"required"`
}

type CheckoutResponse struct {
	OrderId     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

type SubscriptionResponse struct {
	Id               uuid.UUID  `json:"id"`
	PlanName         string     `json:"plan_name"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	IsActive         bool       `json:"is_active"`
}

// MidtransNotification is the subset of the webhook payload the
// service verifies and acts on.
type MidtransNotification struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}
