package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the authoritative merge target for guest profile data.
// One row per user (upsert on user_id).
type UserProfile struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Headline        string
	Location        string
	YearsExperience int
	Skills          []string
	Experience      string
	SourceSessionId *string // set when the row originated from a guest merge
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserSummary is the AI-generated positioning summary. One row per user.
type UserSummary struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Summary         string
	Version         int
	SourceSessionId *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TargetCriteria narrows which companies and contacts generation aims at.
type TargetCriteria struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Roles         []string
	Industries    []string
	CompanySizes  []string
	Locations     []string
	ExcludedNames []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
