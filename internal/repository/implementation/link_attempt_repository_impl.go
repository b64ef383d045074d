package implementation

import (
	"context"
	"errors"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/mapper"
	"jobreach-be/internal/model"
	"jobreach-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

type LinkAttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GuestMapper
}

func NewLinkAttemptRepository(db *gorm.DB) contract.LinkAttemptRepository {
	return &LinkAttemptRepositoryImpl{
		db:     db,
		mapper: mapper.NewGuestMapper(),
	}
}

func (r *LinkAttemptRepositoryImpl) Find(ctx context.Context, sessionId string, userId uuid.UUID) (*entity.LinkAttempt, error) {
	var m model.LinkAttempt
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionId, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AttemptToEntity(&m), nil
}

func (r *LinkAttemptRepositoryImpl) Upsert(ctx context.Context, attempt *entity.LinkAttempt) error {
	var existing model.LinkAttempt
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", attempt.SessionId, attempt.UserId).
		First(&existing).Error
	if err == nil {
		existing.Origin = attempt.Origin
		existing.Linked = attempt.Linked
		existing.Success = attempt.Success
		existing.Attempts = attempt.Attempts
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return err
		}
		*attempt = *r.mapper.AttemptToEntity(&existing)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	m := r.mapper.AttemptToModel(attempt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// Another instance may insert the same pair first. The
		// composite unique index rejects ours; fall back to update.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return r.Upsert(ctx, attempt)
		}
		return err
	}
	*attempt = *r.mapper.AttemptToEntity(m)
	return nil
}

func (r *LinkAttemptRepositoryImpl) Delete(ctx context.Context, sessionId string, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionId, userId).
		Delete(&model.LinkAttempt{}).Error
}

func (r *LinkAttemptRepositoryImpl) DeleteBySession(ctx context.Context, sessionId string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Delete(&model.LinkAttempt{}).Error
}
