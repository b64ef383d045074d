package contract

import (
	"context"

	"jobreach-be/internal/entity"

	"github.com/google/uuid"
)

type LinkAttemptRepository interface {
	// Find returns nil, nil when no record exists for the pair.
	Find(ctx context.Context, sessionId string, userId uuid.UUID) (*entity.LinkAttempt, error)
	// Upsert inserts or updates the single record for the pair. The
	// composite unique index on (session_id, user_id) backs it.
	Upsert(ctx context.Context, attempt *entity.LinkAttempt) error
	Delete(ctx context.Context, sessionId string, userId uuid.UUID) error
	DeleteBySession(ctx context.Context, sessionId string) error
}
