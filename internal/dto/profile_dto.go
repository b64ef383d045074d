package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertProfileRequest struct {
	Headline        string   `json:"headline" validate:"required,max=255"`
	Location        string   `json:"location" validate:"max=255"`
	YearsExperience int      `json:"years_experience" validate:"gte=0,lte=60"`
	Skills          []string `json:"skills" validate:"max=50,dive,max=100"`
	Experience      string   `json:"experience" validate:"max=10000"`
}

type ProfileResponse struct {
	Id              uuid.UUID `json:"id"`
	Headline        string    `json:"headline"`
	Location        string    `json:"location"`
	YearsExperience int       `json:"years_experience"`
	Skills          []string  `json:"skills"`
	Experience      string    `json:"experience"`
	FromGuestMerge  bool      `json:"from_guest_merge"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SummaryResponse struct {
	Id        uuid.UUID `json:"id"`
	Summary   string    `json:"summary"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

type UpsertCriteriaRequest struct {
	Roles         []string `json:"roles" validate:"max=20,dive,max=255"`
	Industries    []string `json:"industries" validate:"max=20,dive,max=255"`
	CompanySizes  []string `json:"company_sizes" validate:"max=10,dive,max=50"`
	Locations     []string `json:"locations" validate:"max=20,dive,max=255"`
	ExcludedNames []string `json:"excluded_names" validate:"max=50,dive,max=255"`
}

type CriteriaResponse struct {
	Id            uuid.UUID `json:"id"`
	Roles         []string  `json:"roles"`
	Industries    []string  `json:"industries"`
	CompanySizes  []string  `json:"company_sizes"`
	Locations     []string  `json:"locations"`
	ExcludedNames []string  `json:"excluded_names"`
	UpdatedAt     time.Time `json:"updated_at"`
}
