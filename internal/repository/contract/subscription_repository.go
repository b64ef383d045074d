package contract

import (
	"context"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub *entity.Subscription) error
	UpdateSubscription(ctx context.Context, sub *entity.Subscription) error
	FindSubscription(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)

	FindPlan(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error)
	FindAllPlans(ctx context.Context) ([]*entity.Plan, error)
}
