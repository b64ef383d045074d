package contract

import (
	"context"
	"encoding/json"

	"jobreach-be/internal/entity"

	"github.com/google/uuid"
)

// GuestPayloadField names one of the JSON columns on guest_sessions.
type GuestPayloadField string

const (
	GuestFieldProfile  GuestPayloadField = "guest_profile"
	GuestFieldSummary  GuestPayloadField = "guest_summary"
	GuestFieldContact  GuestPayloadField = "guest_contact"
	GuestFieldMessages GuestPayloadField = "generated_messages"
	GuestFieldSelected GuestPayloadField = "selected_message"
)

type GuestSessionRepository interface {
	Create(ctx context.Context, session *entity.GuestSession) error
	FindBySessionId(ctx context.Context, sessionId string) (*entity.GuestSession, error)
	SavePayload(ctx context.Context, sessionId string, field GuestPayloadField, payload json.RawMessage) error
	SetSelectedVersion(ctx context.Context, sessionId string, version int) error
	MarkLinked(ctx context.Context, sessionId string, userId uuid.UUID) error
	Delete(ctx context.Context, sessionId string) error
}
