package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Industry string `json:"industry" validate:"max=255"`
	Size     string `json:"size" validate:"max=50"`
	Location string `json:"location" validate:"max=255"`
	Website  string `json:"website" validate:"omitempty,url"`
}

type UpdateCompanyRequest struct {
	Id       uuid.UUID
	Name     string `json:"name" validate:"required,max=255"`
	Industry string `json:"industry" validate:"max=255"`
	Size     string `json:"size" validate:"max=50"`
	Location string `json:"location" validate:"max=255"`
	Website  string `json:"website" validate:"omitempty,url"`
	Status   string `json:"status" validate:"omitempty,oneof=suggested saved archived"`
}

type CompanyResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	Size      string    `json:"size"`
	Location  string    `json:"location"`
	Website   string    `json:"website"`
	Status    string    `json:"status"`
	Rationale string    `json:"rationale,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateContactRequest struct {
	CompanyId   *uuid.UUID `json:"company_id"`
	FullName    string     `json:"full_name" validate:"required,max=255"`
	Title       string     `json:"title" validate:"max=255"`
	Email       string     `json:"email" validate:"omitempty,email"`
	LinkedInURL string     `json:"linkedin_url" validate:"omitempty,url"`
	Notes       string     `json:"notes" validate:"max=10000"`
}

type UpdateContactRequest struct {
	Id          uuid.UUID
	CompanyId   *uuid.UUID `json:"company_id"`
	FullName    string     `json:"full_name" validate:"required,max=255"`
	Title       string     `json:"title" validate:"max=255"`
	Email       string     `json:"email" validate:"omitempty,email"`
	LinkedInURL string     `json:"linkedin_url" validate:"omitempty,url"`
	Notes       string     `json:"notes" validate:"max=10000"`
}

type ContactResponse struct {
	Id          uuid.UUID  `json:"id"`
	CompanyId   *uuid.UUID `json:"company_id,omitempty"`
	FullName    string     `json:"full_name"`
	Title       string     `json:"title"`
	Email       string     `json:"email"`
	LinkedInURL string     `json:"linkedin_url"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateInteractionRequest struct {
	ContactId  uuid.UUID  `json:"contact_id" validate:"required"`
	Kind       string     `json:"kind" validate:"required,oneof=email linkedin call meeting note"`
	Notes      string     `json:"notes" validate:"max=10000"`
	OccurredAt *time.Time `json:"occurred_at"`
}

type UpdateInteractionRequest struct {
	Id         uuid.UUID
	Kind       string     `json:"kind" validate:"required,oneof=email linkedin call meeting note"`
	Notes      string     `json:"notes" validate:"max=10000"`
	OccurredAt *time.Time `json:"occurred_at"`
}

type InteractionResponse struct {
	Id         uuid.UUID `json:"id"`
	ContactId  uuid.UUID `json:"contact_id"`
	Kind       string    `json:"kind"`
	Notes      string    `json:"notes"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
