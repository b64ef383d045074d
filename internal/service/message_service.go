package service

import (
	"context"
	"errors"

	"jobreach-be/internal/dto"
	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/specification"
	"jobreach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IMessageService interface {
	GetAll(ctx context.Context, userId uuid.UUID, contactId *uuid.UUID) ([]*dto.MessageResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error)
	Select(ctx context.Context, userId, messageId uuid.UUID) error
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory) IMessageService {
	return &messageService{uowFactory: uowFactory}
}

func (s *messageService) GetAll(ctx context.Context, userId uuid.UUID, contactId *uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if contactId != nil {
		specs = append(specs, specification.ByContactID{ContactID: *contactId})
	}

	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		result[i] = messageToResponse(m)
	}
	return result, nil
}

func (s *messageService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, errors.New("message not found")
	}

	message.Subject = req.Subject
	message.Body = req.Body

	if err := uow.MessageRepository().Update(ctx, message); err != nil {
		return nil, err
	}
	return messageToResponse(message), nil
}

func (s *messageService) Select(ctx context.Context, userId, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MessageRepository().SelectVersion(ctx, userId, messageId)
}

func (s *messageService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if message == nil {
		return errors.New("message not found")
	}
	return uow.MessageRepository().Delete(ctx, id)
}

func messageToResponse(m *entity.GeneratedMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        m.Id,
		ContactId: m.ContactId,
		Subject:   m.Subject,
		Body:      m.Body,
		Version:   m.Version,
		Selected:  m.Selected,
		CreatedAt: m.CreatedAt,
	}
}
