package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jobreach-be/internal/dto"
	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/contract"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/pkg/store"

	"github.com/google/uuid"
)

// Guest sessions are cached for an hour; the database row is the source
// of truth and the cache entry is rebuilt on any miss.
const guestCacheTTL = time.Hour

type IGuestService interface {
	// GetOrCreate returns the session for the id, creating a fresh one
	// when the id is empty or unknown. The call is idempotent for a
	// known id.
	GetOrCreate(ctx context.Context, sessionId string) (*dto.GuestSessionResponse, error)
	Get(ctx context.Context, sessionId string) (*dto.GuestSessionResponse, error)
	SaveProfile(ctx context.Context, sessionId string, req *dto.GuestProfilePayload) error
	SaveSummary(ctx context.Context, sessionId string, req *dto.GuestSummaryPayload) error
	SaveContact(ctx context.Context, sessionId string, req *dto.GuestContactPayload) error
	SaveMessages(ctx context.Context, sessionId string, messages []dto.GuestMessagePayload) error
	SelectMessage(ctx context.Context, sessionId string, version int) error
	// Clear wipes the session and its link attempt records. Used on
	// guest sign-out and post-migration cleanup.
	Clear(ctx context.Context, sessionId string) error
}

type guestService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      store.KV
}

func NewGuestService(uowFactory unitofwork.RepositoryFactory, cache store.KV) IGuestService {
	return &guestService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func guestCacheKey(sessionId string) string {
	return "guest:session:" + sessionId
}

func (s *guestService) GetOrCreate(ctx context.Context, sessionId string) (*dto.GuestSessionResponse, error) {
	if sessionId != "" {
		existing, err := s.load(ctx, sessionId)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.toResponse(existing), nil
		}
	}

	session := &entity.GuestSession{
		SessionId: uuid.New().String(),
	}
	if sessionId != "" {
		session.SessionId = sessionId
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GuestSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	s.cacheSession(ctx, session)
	return s.toResponse(session), nil
}

func (s *guestService) Get(ctx context.Context, sessionId string) (*dto.GuestSessionResponse, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("guest session not found")
	}
	return s.toResponse(session), nil
}

func (s *guestService) SaveProfile(ctx context.Context, sessionId string, req *dto.GuestProfilePayload) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return s.savePayload(ctx, sessionId, contract.GuestFieldProfile, payload)
}

func (s *guestService) SaveSummary(ctx context.Context, sessionId string, req *dto.GuestSummaryPayload) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return s.savePayload(ctx, sessionId, contract.GuestFieldSummary, payload)
}

func (s *guestService) SaveContact(ctx context.Context, sessionId string, req *dto.GuestContactPayload) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return s.savePayload(ctx, sessionId, contract.GuestFieldContact, payload)
}

func (s *guestService) SaveMessages(ctx context.Context, sessionId string, messages []dto.GuestMessagePayload) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	return s.savePayload(ctx, sessionId, contract.GuestFieldMessages, payload)
}

func (s *guestService) SelectMessage(ctx context.Context, sessionId string, version int) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.GuestSessionRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return err
	}
	if session == nil {
		return errors.New("guest session not found")
	}

	var messages []dto.GuestMessagePayload
	if len(session.GeneratedMessages) > 0 {
		if err := json.Unmarshal(session.GeneratedMessages, &messages); err != nil {
			return err
		}
	}

	var selected *dto.GuestMessagePayload
	for i := range messages {
		if messages[i].Version == version {
			selected = &messages[i]
			break
		}
	}
	if selected == nil {
		return errors.New("message version not found")
	}

	selectedPayload, err := json.Marshal(selected)
	if err != nil {
		return err
	}
	if err := uow.GuestSessionRepository().SavePayload(ctx, sessionId, contract.GuestFieldSelected, selectedPayload); err != nil {
		return err
	}
	if err := uow.GuestSessionRepository().SetSelectedVersion(ctx, sessionId, version); err != nil {
		return err
	}

	s.invalidate(ctx, sessionId)
	return nil
}

func (s *guestService) Clear(ctx context.Context, sessionId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.LinkAttemptRepository().DeleteBySession(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.GuestSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, sessionId)
	return nil
}

func (s *guestService) savePayload(ctx context.Context, sessionId string, field contract.GuestPayloadField, payload json.RawMessage) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GuestSessionRepository().SavePayload(ctx, sessionId, field, payload); err != nil {
		return err
	}
	s.invalidate(ctx, sessionId)
	return nil
}

func (s *guestService) load(ctx context.Context, sessionId string) (*entity.GuestSession, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, guestCacheKey(sessionId))
		if err == nil && found {
			var session entity.GuestSession
			if uerr := json.Unmarshal([]byte(cached), &session); uerr == nil {
				return &session, nil
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.GuestSessionRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session != nil {
		s.cacheSession(ctx, session)
	}
	return session, nil
}

func (s *guestService) cacheSession(ctx context.Context, session *entity.GuestSession) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, guestCacheKey(session.SessionId), string(raw), guestCacheTTL)
}

func (s *guestService) invalidate(ctx context.Context, sessionId string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, guestCacheKey(sessionId))
}

func (s *guestService) toResponse(session *entity.GuestSession) *dto.GuestSessionResponse {
	return &dto.GuestSessionResponse{
		SessionId:         session.SessionId,
		GuestProfile:      session.GuestProfile,
		GuestSummary:      session.GuestSummary,
		GuestContact:      session.GuestContact,
		GeneratedMessages: session.GeneratedMessages,
		SelectedMessage:   session.SelectedMessage,
		SelectedVersion:   session.SelectedVersion,
		Linked:            session.LinkedUserId != nil,
		CreatedAt:         session.CreatedAt,
	}
}
