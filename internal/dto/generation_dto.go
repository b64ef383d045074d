package dto

import (
	"github.com/google/uuid"
)

// GenerateSummaryRequest kicks off summary generation from the caller's
// profile. Guest callers pass their session id via middleware, not the
// body.
type GenerateSummaryRequest struct {
	Tone string `json:"tone" validate:"omitempty,oneof=professional friendly direct"`
}

type GenerateSummaryResponse struct {
	Summary string `json:"summary"`
	Version int    `json:"version"`
}

type GenerateCompaniesRequest struct {
	Count int `json:"count" validate:"omitempty,gte=1,lte=20"`
}

type GeneratedCompany struct {
	Name      string `json:"name"`
	Industry  string `json:"industry"`
	Size      string `json:"size"`
	Location  string `json:"location"`
	Rationale string `json:"rationale"`
}

type GenerateCompaniesResponse struct {
	Companies []GeneratedCompany `json:"companies"`
}

type GenerateMessagesRequest struct {
	ContactId *uuid.UUID `json:"contact_id"`
	Versions  int        `json:"versions" validate:"omitempty,gte=1,lte=5"`
	Tone      string     `json:"tone" validate:"omitempty,oneof=professional friendly direct"`
}

type GeneratedMessageVersion struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Version int    `json:"version"`
}

type GenerateMessagesResponse struct {
	Messages []GeneratedMessageVersion `json:"messages"`
}

// AsyncGenerationResponse is returned when generation is queued instead
// of executed inline. The result arrives over the websocket channel.
type AsyncGenerationResponse struct {
	JobId  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

type MatchCompaniesRequest struct {
	Query string `json:"query" validate:"required,max=1000"`
	Limit int    `json:"limit" validate:"omitempty,gte=1,lte=50"`
}

type MatchedCompanyResponse struct {
	CompanyResponse
	Similarity float64 `json:"similarity"`
}
