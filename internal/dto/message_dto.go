package dto

import (
	"time"

	"github.com/google/uuid"
)

type MessageResponse struct {
	Id        uuid.UUID  `json:"id"`
	ContactId *uuid.UUID `json:"contact_id,omitempty"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Version   int        `json:"version"`
	Selected  bool       `json:"selected"`
	CreatedAt time.Time  `json:"created_at"`
}

type UpdateMessageRequest struct {
	Id      uuid.UUID
	Subject string `json:"subject" validate:"max=255"`
	Body    string `json:"body" validate:"required,max=10000"`
}

type SelectMessageVersionRequest struct {
	Id uuid.UUID
}
