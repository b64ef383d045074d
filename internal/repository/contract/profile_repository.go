package contract

import (
	"context"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	UpsertProfile(ctx context.Context, profile *entity.UserProfile) error
	FindProfile(ctx context.Context, specs ...specification.Specification) (*entity.UserProfile, error)
	CountProfiles(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteProfile(ctx context.Context, userId uuid.UUID) error

	UpsertSummary(ctx context.Context, summary *entity.UserSummary) error
	FindSummary(ctx context.Context, specs ...specification.Specification) (*entity.UserSummary, error)
	DeleteSummary(ctx context.Context, userId uuid.UUID) error

	UpsertCriteria(ctx context.Context, criteria *entity.TargetCriteria) error
	FindCriteria(ctx context.Context, specs ...specification.Specification) (*entity.TargetCriteria, error)
	DeleteCriteria(ctx context.Context, userId uuid.UUID) error
}
