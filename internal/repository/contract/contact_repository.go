package contract

import (
	"context"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Contact, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Contact, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
