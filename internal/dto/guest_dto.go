package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GuestProfilePayload is the typed shape of a guest session's profile
// blob. Stored as opaque JSON until the merge moves it into
// user_profiles.
type GuestProfilePayload struct {
	Headline        string   `json:"headline" validate:"required,max=255"`
	Location        string   `json:"location" validate:"max=255"`
	YearsExperience int      `json:"years_experience" validate:"gte=0,lte=60"`
	Skills          []string `json:"skills" validate:"max=50,dive,max=100"`
	Experience      string   `json:"experience" validate:"max=10000"`
}

type GuestSummaryPayload struct {
	Summary string `json:"summary" validate:"required,max=5000"`
	Version int    `json:"version" validate:"gte=1"`
}

type GuestContactPayload struct {
	FullName    string `json:"full_name" validate:"required,max=255"`
	Title       string `json:"title" validate:"max=255"`
	CompanyName string `json:"company_name" validate:"max=255"`
	Email       string `json:"email" validate:"omitempty,email"`
	LinkedInURL string `json:"linkedin_url" validate:"omitempty,url"`
}

type GuestMessagePayload struct {
	Subject string `json:"subject" validate:"max=255"`
	Body    string `json:"body" validate:"required,max=10000"`
	Version int    `json:"version" validate:"gte=1"`
}

type SelectMessageRequest struct {
	Version int `json:"version" validate:"required,gte=1"`
}

type GuestSessionResponse struct {
	SessionId         string          `json:"session_id"`
	GuestProfile      json.RawMessage `json:"guest_profile,omitempty"`
	GuestSummary      json.RawMessage `json:"guest_summary,omitempty"`
	GuestContact      json.RawMessage `json:"guest_contact,omitempty"`
	GeneratedMessages json.RawMessage `json:"generated_messages,omitempty"`
	SelectedMessage   json.RawMessage `json:"selected_message,omitempty"`
	SelectedVersion   *int            `json:"selected_version,omitempty"`
	Linked            bool            `json:"linked"`
	CreatedAt         time.Time       `json:"created_at"`
}

type LinkStatusResponse struct {
	SessionId string     `json:"session_id"`
	UserId    uuid.UUID  `json:"user_id"`
	State     string     `json:"state"`
	Linked    bool       `json:"linked"`
	Attempts  int        `json:"attempts"`
	LinkedAt  *time.Time `json:"linked_at,omitempty"`
}

type TriggerLinkRequest struct {
	GuestSessionId string `json:"guest_session_id" validate:"required,uuid4"`
}
