package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/mapper"
	"jobreach-be/internal/model"
	"jobreach-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GuestMapper
}

func NewGuestSessionRepository(db *gorm.DB) contract.GuestSessionRepository {
	return &GuestSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewGuestMapper(),
	}
}

func (r *GuestSessionRepositoryImpl) Create(ctx context.Context, session *entity.GuestSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *GuestSessionRepositoryImpl) FindBySessionId(ctx context.Context, sessionId string) (*entity.GuestSession, error) {
	var m model.GuestSession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *GuestSessionRepositoryImpl) SavePayload(ctx context.Context, sessionId string, field contract.GuestPayloadField, payload json.RawMessage) error {
	switch field {
	case contract.GuestFieldProfile, contract.GuestFieldSummary, contract.GuestFieldContact,
		contract.GuestFieldMessages, contract.GuestFieldSelected:
	default:
		return fmt.Errorf("unknown guest payload field: %s", field)
	}
	result := r.db.WithContext(ctx).Model(&model.GuestSession{}).
		Where("session_id = ?", sessionId).
		Update(string(field), []byte(payload))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GuestSessionRepositoryImpl) SetSelectedVersion(ctx context.Context, sessionId string, version int) error {
	result := r.db.WithContext(ctx).Model(&model.GuestSession{}).
		Where("session_id = ?", sessionId).
		Update("selected_version", version)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GuestSessionRepositoryImpl) MarkLinked(ctx context.Context, sessionId string, userId uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.GuestSession{}).
		Where("session_id = ?", sessionId).
		Updates(map[string]interface{}{
			"linked_user_id": userId,
			"linked_at":      now,
		}).Error
}

func (r *GuestSessionRepositoryImpl) Delete(ctx context.Context, sessionId string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.GuestSession{}).Error
}
