package service

import (
	"context"
	"errors"
	"time"

	"jobreach-be/internal/dto"
	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/specification"
	"jobreach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IInteractionService interface {
	GetAllByContact(ctx context.Context, userId, contactId uuid.UUID) ([]*dto.InteractionResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateInteractionRequest) (*dto.InteractionResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateInteractionRequest) (*dto.InteractionResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type interactionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewInteractionService(uowFactory unitofwork.RepositoryFactory) IInteractionService {
	return &interactionService{uowFactory: uowFactory}
}

func (s *interactionService) GetAllByContact(ctx context.Context, userId, contactId uuid.UUID) ([]*dto.InteractionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interactions, err := uow.InteractionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByContactID{ContactID: contactId},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.InteractionResponse, len(interactions))
	for i, in := range interactions {
		result[i] = interactionToResponse(in)
	}
	return result, nil
}

func (s *interactionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateInteractionRequest) (*dto.InteractionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: req.ContactId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, errors.New("contact not found")
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	interaction := &entity.Interaction{
		Id:         uuid.New(),
		UserId:     userId,
		ContactId:  req.ContactId,
		Kind:       entity.InteractionKind(req.Kind),
		Notes:      req.Notes,
		OccurredAt: occurredAt,
	}
	if err := uow.InteractionRepository().Create(ctx, interaction); err != nil {
		return nil, err
	}
	return interactionToResponse(interaction), nil
}

func (s *interactionService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateInteractionRequest) (*dto.InteractionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interaction, err := uow.InteractionRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if interaction == nil {
		return nil, errors.New("interaction not found")
	}

	interaction.Kind = entity.InteractionKind(req.Kind)
	interaction.Notes = req.Notes
	if req.OccurredAt != nil {
		interaction.OccurredAt = *req.OccurredAt
	}

	if err := uow.InteractionRepository().Update(ctx, interaction); err != nil {
		return nil, err
	}
	return interactionToResponse(interaction), nil
}

func (s *interactionService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	interaction, err := uow.InteractionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if interaction == nil {
		return errors.New("interaction not found")
	}
	return uow.InteractionRepository().Delete(ctx, id)
}

func interactionToResponse(in *entity.Interaction) *dto.InteractionResponse {
	return &dto.InteractionResponse{
		Id:         in.Id,
		ContactId:  in.ContactId,
		Kind:       string(in.Kind),
		Notes:      in.Notes,
		OccurredAt: in.OccurredAt,
		CreatedAt:  in.CreatedAt,
	}
}
