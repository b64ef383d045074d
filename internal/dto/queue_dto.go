package dto

import "github.com/google/uuid"

// EmbedCompanyMessage is the queue payload that asks the consumer to
// (re)compute a company's embedding.
type EmbedCompanyMessage struct {
	CompanyId uuid.UUID `json:"company_id"`
	UserId    uuid.UUID `json:"user_id"`
}
