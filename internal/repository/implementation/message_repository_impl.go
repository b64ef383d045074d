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

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.GeneratedMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) CreateBatch(ctx context.Context, messages []*entity.GeneratedMessage) error {
	if len(messages) == 0 {
		return nil
	}
	models := make([]*model.GeneratedMessage, len(messages))
	for i, msg := range messages {
		models[i] = r.mapper.ToModel(msg)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*messages[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *MessageRepositoryImpl) Update(ctx context.Context, message *entity.GeneratedMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GeneratedMessage{}).Error
}

func (r *MessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedMessage, error) {
	var m model.GeneratedMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedMessage, error) {
	var models []*model.GeneratedMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("version ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) SelectVersion(ctx context.Context, userId, messageId uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target model.GeneratedMessage
		if err := tx.Where("id = ? AND user_id = ?", messageId, userId).First(&target).Error; err != nil {
			return err
		}

		peers := tx.Model(&model.GeneratedMessage{}).Where("user_id = ?", userId)
		if target.ContactId != nil {
			peers = peers.Where("contact_id = ?", *target.ContactId)
		} else {
			peers = peers.Where("contact_id IS NULL")
		}
		if err := peers.Update("selected", false).Error; err != nil {
			return err
		}

		return tx.Model(&model.GeneratedMessage{}).
			Where("id = ?", messageId).
			Update("selected", true).Error
	})
}
