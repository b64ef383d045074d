package implementation

import (
	"context"
	"errors"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/mapper"
	"jobreach-be/internal/model"
	"jobreach-be/internal/repository/contract"
	"jobreach-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CompanyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NetworkMapper
}

func NewCompanyRepository(db *gorm.DB) contract.CompanyRepository {
	return &CompanyRepositoryImpl{
		db:     db,
		mapper: mapper.NewNetworkMapper(),
	}
}

func (r *CompanyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CompanyRepositoryImpl) Create(ctx context.Context, company *entity.Company) error {
	m := r.mapper.CompanyToModel(company)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*company = *r.mapper.CompanyToEntity(m)
	return nil
}

func (r *CompanyRepositoryImpl) Update(ctx context.Context, company *entity.Company) error {
	m := r.mapper.CompanyToModel(company)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*company = *r.mapper.CompanyToEntity(m)
	return nil
}

func (r *CompanyRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Company{}).Error
}

func (r *CompanyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Company, error) {
	var m model.Company
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CompanyToEntity(&m), nil
}

func (r *CompanyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Company, error) {
	var models []*model.Company
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.CompaniesToEntities(models), nil
}

func (r *CompanyRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Company{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CompanyRepositoryImpl) UpsertEmbedding(ctx context.Context, companyId uuid.UUID, embedding pgvector.Vector) error {
	var existing model.CompanyEmbedding
	err := r.db.WithContext(ctx).Where("company_id = ?", companyId).First(&existing).Error
	if err == nil {
		existing.Embedding = embedding
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&model.CompanyEmbedding{
		CompanyId: companyId,
		Embedding: embedding,
	}).Error
}

func (r *CompanyRepositoryImpl) SearchSimilar(ctx context.Context, userId uuid.UUID, query pgvector.Vector, limit int) ([]contract.CompanyMatch, error) {
	if limit <= 0 {
		limit = 10
	}

	type result struct {
		model.Company
		Distance float64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Table("companies").
		Select("companies.*, company_embeddings.embedding <=> ? as distance", query).
		Joins("JOIN company_embeddings ON company_embeddings.company_id = companies.id").
		Where("companies.user_id = ?", userId).
		Where("companies.deleted_at IS NULL").
		Order("distance ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	matches := make([]contract.CompanyMatch, len(results))
	for i, res := range results {
		c := res.Company
		matches[i] = contract.CompanyMatch{
			Company:  r.mapper.CompanyToEntity(&c),
			Distance: res.Distance,
		}
	}
	return matches, nil
}
