package entity

import (
	"time"

	"github.com/google/uuid"
)

type CompanyStatus string

const (
	CompanyStatusSuggested CompanyStatus = "suggested"
	CompanyStatusSaved     CompanyStatus = "saved"
	CompanyStatusArchived  CompanyStatus = "archived"
)

// Company is a target employer, either AI-suggested or user-entered.
// Uniqueness is per (user_id, name).
type Company struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Name            string
	Industry        string
	Size            string
	Location        string
	Website         string
	Rationale       string // why generation picked it
	Status          CompanyStatus
	SourceSessionId *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Contact is a person at a target company the user wants to reach.
type Contact struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	CompanyId       *uuid.UUID
	FullName        string
	Title           string
	Email           string
	LinkedInURL     string
	Notes           string
	SourceSessionId *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type InteractionKind string

const (
	InteractionKindEmail    InteractionKind = "email"
	InteractionKindLinkedIn InteractionKind = "linkedin"
	InteractionKindCall     InteractionKind = "call"
	InteractionKindMeeting  InteractionKind = "meeting"
	InteractionKindNote     InteractionKind = "note"
)

// Interaction records one touchpoint with a contact.
type Interaction struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	ContactId  uuid.UUID
	Kind       InteractionKind
	Notes      string
	OccurredAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
