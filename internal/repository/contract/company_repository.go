package contract

import (
	"context"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// CompanyMatch pairs a company with its embedding distance to a query
// vector. Lower distance means closer.
type CompanyMatch struct {
	Company  *entity.Company
	Distance float64
}

type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Company, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Company, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpsertEmbedding(ctx context.Context, companyId uuid.UUID, embedding pgvector.Vector) error
	SearchSimilar(ctx context.Context, userId uuid.UUID, query pgvector.Vector, limit int) ([]CompanyMatch, error)
}
