package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Company struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Industry        string    `gorm:"type:varchar(255)"`
	Size            string    `gorm:"type:varchar(50)"`
	Location        string    `gorm:"type:varchar(255)"`
	Website         string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(50);not null;default:'suggested'"`
	Rationale       string    `gorm:"type:text"`
	SourceSessionId *string        `gorm:"type:uuid"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}

// CompanyEmbedding keeps the vector out of the hot row so list queries
// stay cheap. One embedding per company, replaced on profile change.
type CompanyEmbedding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (CompanyEmbedding) TableName() string {
	return "company_embeddings"
}

type Contact struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyId   *uuid.UUID `gorm:"type:uuid;index"`
	FullName    string     `gorm:"type:varchar(255);not null"`
	Title       string     `gorm:"type:varchar(255)"`
	Email       string     `gorm:"type:varchar(255)"`
	LinkedInURL string     `gorm:"type:text"`
	Notes       string     `gorm:"type:text"`
	SourceSessionId *string        `gorm:"type:uuid"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Contact) TableName() string {
	return "contacts"
}

type Interaction struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ContactId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind       string     `gorm:"type:varchar(50);not null"`
	Notes      string     `gorm:"type:text"`
	OccurredAt time.Time  `gorm:"not null"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Interaction) TableName() string {
	return "interactions"
}
