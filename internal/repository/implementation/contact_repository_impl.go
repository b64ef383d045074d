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
	"gorm.io/gorm"
)

type ContactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NetworkMapper
}

func NewContactRepository(db *gorm.DB) contract.ContactRepository {
	return &ContactRepositoryImpl{
		db:     db,
		mapper: mapper.NewNetworkMapper(),
	}
}

func (r *ContactRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *entity.Contact) error {
	m := r.mapper.ContactToModel(contact)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*contact = *r.mapper.ContactToEntity(m)
	return nil
}

func (r *ContactRepositoryImpl) Update(ctx context.Context, contact *entity.Contact) error {
	m := r.mapper.ContactToModel(contact)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*contact = *r.mapper.ContactToEntity(m)
	return nil
}

func (r *ContactRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Contact{}).Error
}

func (r *ContactRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Contact, error) {
	var m model.Contact
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ContactToEntity(&m), nil
}

func (r *ContactRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Contact, error) {
	var models []*model.Contact
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ContactsToEntities(models), nil
}

func (r *ContactRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Contact{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
