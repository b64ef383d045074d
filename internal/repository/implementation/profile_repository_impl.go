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

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProfileRepositoryImpl) UpsertProfile(ctx context.Context, profile *entity.UserProfile) error {
	var existing model.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserId).First(&existing).Error
	if err == nil {
		m := r.mapper.ProfileToModel(profile)
		m.Id = existing.Id
		m.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
			return err
		}
		*profile = *r.mapper.ProfileToEntity(m)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	m := r.mapper.ProfileToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ProfileToEntity(m)
	return nil
}

func (r *ProfileRepositoryImpl) FindProfile(ctx context.Context, specs ...specification.Specification) (*entity.UserProfile, error) {
	var m model.UserProfile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProfileToEntity(&m), nil
}

func (r *ProfileRepositoryImpl) CountProfiles(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UserProfile{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProfileRepositoryImpl) DeleteProfile(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.UserProfile{}).Error
}

func (r *ProfileRepositoryImpl) UpsertSummary(ctx context.Context, summary *entity.UserSummary) error {
	var existing model.UserSummary
	err := r.db.WithContext(ctx).Where("user_id = ?", summary.UserId).First(&existing).Error
	if err == nil {
		m := r.mapper.SummaryToModel(summary)
		m.Id = existing.Id
		m.CreatedAt = existing.CreatedAt
		if m.Version <= existing.Version {
			m.Version = existing.Version + 1
		}
		if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
			return err
		}
		*summary = *r.mapper.SummaryToEntity(m)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	m := r.mapper.SummaryToModel(summary)
	if m.Version == 0 {
		m.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*summary = *r.mapper.SummaryToEntity(m)
	return nil
}

func (r *ProfileRepositoryImpl) FindSummary(ctx context.Context, specs ...specification.Specification) (*entity.UserSummary, error) {
	var m model.UserSummary
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("version DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SummaryToEntity(&m), nil
}

func (r *ProfileRepositoryImpl) DeleteSummary(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.UserSummary{}).Error
}

func (r *ProfileRepositoryImpl) UpsertCriteria(ctx context.Context, criteria *entity.TargetCriteria) error {
	var existing model.TargetCriteria
	err := r.db.WithContext(ctx).Where("user_id = ?", criteria.UserId).First(&existing).Error
	if err == nil {
		m := r.mapper.CriteriaToModel(criteria)
		m.Id = existing.Id
		m.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
			return err
		}
		*criteria = *r.mapper.CriteriaToEntity(m)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	m := r.mapper.CriteriaToModel(criteria)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*criteria = *r.mapper.CriteriaToEntity(m)
	return nil
}

func (r *ProfileRepositoryImpl) FindCriteria(ctx context.Context, specs ...specification.Specification) (*entity.TargetCriteria, error) {
	var m model.TargetCriteria
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CriteriaToEntity(&m), nil
}

func (r *ProfileRepositoryImpl) DeleteCriteria(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.TargetCriteria{}).Error
}
