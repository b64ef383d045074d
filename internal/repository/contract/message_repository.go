package contract

import (
	"context"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.GeneratedMessage) error
	CreateBatch(ctx context.Context, messages []*entity.GeneratedMessage) error
	Update(ctx context.Context, message *entity.GeneratedMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedMessage, error)

	// SelectVersion marks one message selected and clears the flag on
	// the user's other versions for the same contact.
	SelectVersion(ctx context.Context, userId, messageId uuid.UUID) error
}
