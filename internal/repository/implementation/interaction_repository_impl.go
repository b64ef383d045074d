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

type InteractionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NetworkMapper
}

func NewInteractionRepository(db *gorm.DB) contract.InteractionRepository {
	return &InteractionRepositoryImpl{
		db:     db,
		mapper: mapper.NewNetworkMapper(),
	}
}

func (r *InteractionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InteractionRepositoryImpl) Create(ctx context.Context, interaction *entity.Interaction) error {
	m := r.mapper.InteractionToModel(interaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interaction = *r.mapper.InteractionToEntity(m)
	return nil
}

func (r *InteractionRepositoryImpl) Update(ctx context.Context, interaction *entity.Interaction) error {
	m := r.mapper.InteractionToModel(interaction)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*interaction = *r.mapper.InteractionToEntity(m)
	return nil
}

func (r *InteractionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Interaction{}).Error
}

func (r *InteractionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interaction, error) {
	var m model.Interaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.InteractionToEntity(&m), nil
}

func (r *InteractionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interaction, error) {
	var models []*model.Interaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("occurred_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.InteractionsToEntities(models), nil
}
