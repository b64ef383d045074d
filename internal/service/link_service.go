package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobreach-be/internal/dto"
	"jobreach-be/internal/entity"
	"jobreach-be/internal/pkg/logger"
	"jobreach-be/internal/repository/specification"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/pkg/broadcast"
	"jobreach-be/pkg/events"
	"jobreach-be/pkg/linking"
	pktNats "jobreach-be/pkg/nats"

	"github.com/google/uuid"
)

type ILinkService interface {
	// TriggerReconcile runs the linking state machine for the pair. Safe
	// to call from every trigger point; duplicate and concurrent calls
	// collapse into one attempt.
	TriggerReconcile(ctx context.Context, userId uuid.UUID, sessionId string, origin linking.Origin) linking.Outcome
	Status(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.LinkStatusResponse, error)
}

type linkService struct {
	uowFactory  unitofwork.RepositoryFactory
	reconciler  *linking.Reconciler
	broadcaster broadcast.Broadcaster
	publisher   *pktNats.Publisher
	log         logger.ILogger
}

func NewLinkService(
	uowFactory unitofwork.RepositoryFactory,
	policy linking.RetryPolicy,
	broadcaster broadcast.Broadcaster,
	publisher *pktNats.Publisher,
	log logger.ILogger,
	opts ...linking.Option,
) ILinkService {
	s := &linkService{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		publisher:   publisher,
		log:         log,
	}
	store := &attemptStore{uowFactory: uowFactory}
	s.reconciler = linking.NewReconciler(s, store, policy, log, opts...)
	return s
}

func (s *linkService) TriggerReconcile(ctx context.Context, userId uuid.UUID, sessionId string, origin linking.Origin) linking.Outcome {
	outcome := s.reconciler.Reconcile(ctx, userId, sessionId, origin)

	if outcome.Linked && !outcome.ShortCircuited {
		s.announceLinked(ctx, userId, sessionId, origin)
	}
	return outcome
}

func (s *linkService) Status(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.LinkStatusResponse, error) {
	state := s.reconciler.StateOf(ctx, sessionId, userId)

	resp := &dto.LinkStatusResponse{
		SessionId: sessionId,
		UserId:    userId,
		State:     string(state),
		Linked:    state == linking.StateSucceeded,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	attempt, err := uow.LinkAttemptRepository().Find(ctx, sessionId, userId)
	if err != nil {
		return nil, err
	}
	if attempt != nil {
		resp.Attempts = attempt.Attempts
		if attempt.Success {
			t := attempt.UpdatedAt
			resp.LinkedAt = &t
		}
	}
	return resp, nil
}

// LinkGuestProfile moves every guest payload into the user's own rows
// inside one transaction. Re-running it for an already merged session
// is harmless: rows sourced from the session are detected and skipped.
func (s *linkService) LinkGuestProfile(ctx context.Context, userId uuid.UUID, sessionId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.GuestSessionRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return err
	}
	if session == nil {
		return errors.New("guest session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := s.mergeProfile(ctx, uow, userId, session); err != nil {
		return err
	}
	if err := s.mergeSummary(ctx, uow, userId, session); err != nil {
		return err
	}
	if err := s.mergeContactAndMessages(ctx, uow, userId, session); err != nil {
		return err
	}

	if err := uow.GuestSessionRepository().MarkLinked(ctx, sessionId, userId); err != nil {
		return err
	}

	return uow.Commit()
}

// MergedDataExists reports whether the user already has the rows a
// merge would have produced. It backs the verification step that keeps
// a stale success marker from hiding lost data.
func (s *linkService) MergedDataExists(ctx context.Context, userId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.ProfileRepository().CountProfiles(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	// A session whose payloads were all empty leaves no profile row;
	// the linked marker on the session itself is the evidence then.
	contacts, err := uow.ContactRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return false, err
	}
	return contacts > 0, nil
}

func (s *linkService) mergeProfile(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, session *entity.GuestSession) error {
	if len(session.GuestProfile) == 0 {
		return nil
	}

	var payload dto.GuestProfilePayload
	if err := json.Unmarshal(session.GuestProfile, &payload); err != nil {
		return fmt.Errorf("malformed guest profile payload: %w", err)
	}

	sid := session.SessionId
	return uow.ProfileRepository().UpsertProfile(ctx, &entity.UserProfile{
		Id:              uuid.New(),
		UserId:          userId,
		Headline:        payload.Headline,
		Location:        payload.Location,
		YearsExperience: payload.YearsExperience,
		Skills:          payload.Skills,
		Experience:      payload.Experience,
		SourceSessionId: &sid,
	})
}

func (s *linkService) mergeSummary(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, session *entity.GuestSession) error {
	if len(session.GuestSummary) == 0 {
		return nil
	}

	var payload dto.GuestSummaryPayload
	if err := json.Unmarshal(session.GuestSummary, &payload); err != nil {
		return fmt.Errorf("malformed guest summary payload: %w", err)
	}

	sid := session.SessionId
	version := payload.Version
	if version < 1 {
		version = 1
	}
	return uow.ProfileRepository().UpsertSummary(ctx, &entity.UserSummary{
		Id:              uuid.New(),
		UserId:          userId,
		Summary:         payload.Summary,
		Version:         version,
		SourceSessionId: &sid,
	})
}

func (s *linkService) mergeContactAndMessages(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, session *entity.GuestSession) error {
	sid := session.SessionId

	// Skip when a previous merge already copied rows from this session.
	already, err := uow.ContactRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("source_session_id", sid),
	)
	if err != nil {
		return err
	}

	var contactId *uuid.UUID
	if len(session.GuestContact) > 0 && already == 0 {
		var payload dto.GuestContactPayload
		if err := json.Unmarshal(session.GuestContact, &payload); err != nil {
			return fmt.Errorf("malformed guest contact payload: %w", err)
		}

		contact := &entity.Contact{
			Id:              uuid.New(),
			UserId:          userId,
			FullName:        payload.FullName,
			Title:           payload.Title,
			Email:           payload.Email,
			LinkedInURL:     payload.LinkedInURL,
			SourceSessionId: &sid,
		}
		if payload.CompanyName != "" {
			company := &entity.Company{
				Id:              uuid.New(),
				UserId:          userId,
				Name:            payload.CompanyName,
				Status:          entity.CompanyStatusSaved,
				SourceSessionId: &sid,
			}
			existing, err := uow.CompanyRepository().FindOne(ctx,
				specification.UserOwnedBy{UserID: userId},
				specification.ByName{Name: payload.CompanyName},
			)
			if err != nil {
				return err
			}
			if existing != nil {
				company = existing
			} else if err := uow.CompanyRepository().Create(ctx, company); err != nil {
				return err
			}
			contact.CompanyId = &company.Id
		}
		if err := uow.ContactRepository().Create(ctx, contact); err != nil {
			return err
		}
		contactId = &contact.Id
	}

	if len(session.GeneratedMessages) == 0 {
		return nil
	}

	existingMessages, err := uow.MessageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("source_session_id", sid),
	)
	if err != nil {
		return err
	}
	if len(existingMessages) > 0 {
		return nil
	}

	var payloads []dto.GuestMessagePayload
	if err := json.Unmarshal(session.GeneratedMessages, &payloads); err != nil {
		return fmt.Errorf("malformed guest messages payload: %w", err)
	}

	messages := make([]*entity.GeneratedMessage, 0, len(payloads))
	for _, p := range payloads {
		version := p.Version
		if version < 1 {
			version = len(messages) + 1
		}
		selected := session.SelectedVersion != nil && *session.SelectedVersion == version
		messages = append(messages, &entity.GeneratedMessage{
			Id:              uuid.New(),
			UserId:          userId,
			ContactId:       contactId,
			Subject:         p.Subject,
			Body:            p.Body,
			Version:         version,
			Selected:        selected,
			SourceSessionId: &sid,
		})
	}
	return uow.MessageRepository().CreateBatch(ctx, messages)
}

func (s *linkService) announceLinked(ctx context.Context, userId uuid.UUID, sessionId string, origin linking.Origin) {
	if s.broadcaster != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"user_id":    userId.String(),
			"session_id": sessionId,
			"origin":     string(origin),
		})
		if err := s.broadcaster.Publish(ctx, broadcast.TopicGuestLinked, payload); err != nil {
			s.log.Warn("Linking", "Failed to broadcast linked signal", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	if s.publisher != nil {
		event := events.BaseEvent{
			Type: events.TypeGuestLinked,
			Data: map[string]interface{}{
				"user_id":    userId,
				"session_id": sessionId,
				"origin":     string(origin),
				"time":       time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log.Warn("Linking", "Failed to publish GUEST_LINKED event", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}
}

// attemptStore adapts the link attempt repository to the reconciler's
// persistence contract.
type attemptStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func (a *attemptStore) Find(ctx context.Context, sessionId string, userId uuid.UUID) (*linking.Attempt, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.LinkAttemptRepository().Find(ctx, sessionId, userId)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return &linking.Attempt{
		SessionID: rec.SessionId,
		UserID:    rec.UserId,
		Linked:    rec.Linked,
		Success:   rec.Success,
		Origin:    linking.Origin(rec.Origin),
		Timestamp: rec.UpdatedAt,
		Attempts:  rec.Attempts,
	}, nil
}

func (a *attemptStore) MarkSuccess(ctx context.Context, attempt *linking.Attempt) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.LinkAttemptRepository().Upsert(ctx, &entity.LinkAttempt{
		Id:        uuid.New(),
		SessionId: attempt.SessionID,
		UserId:    attempt.UserID,
		Origin:    string(attempt.Origin),
		Linked:    attempt.Linked,
		Success:   attempt.Success,
		Attempts:  attempt.Attempts,
	})
}

func (a *attemptStore) RecordFailure(ctx context.Context, attempt *linking.Attempt) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.LinkAttemptRepository().Upsert(ctx, &entity.LinkAttempt{
		Id:        uuid.New(),
		SessionId: attempt.SessionID,
		UserId:    attempt.UserID,
		Origin:    string(attempt.Origin),
		Linked:    false,
		Success:   false,
		Attempts:  attempt.Attempts,
	})
}

func (a *attemptStore) Invalidate(ctx context.Context, sessionId string, userId uuid.UUID) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.LinkAttemptRepository().Find(ctx, sessionId, userId)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	rec.Linked = false
	rec.Success = false
	return uow.LinkAttemptRepository().Upsert(ctx, rec)
}
