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

type IContactService interface {
	GetAll(ctx context.Context, userId uuid.UUID, companyId *uuid.UUID) ([]*dto.ContactResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateContactRequest) (*dto.ContactResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.ContactResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type contactService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewContactService(uowFactory unitofwork.RepositoryFactory) IContactService {
	return &contactService{uowFactory: uowFactory}
}

func (s *contactService) GetAll(ctx context.Context, userId uuid.UUID, companyId *uuid.UUID) ([]*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if companyId != nil {
		specs = append(specs, specification.ByCompanyID{CompanyID: *companyId})
	}

	contacts, err := uow.ContactRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ContactResponse, len(contacts))
	for i, c := range contacts {
		result[i] = contactToResponse(c)
	}
	return result, nil
}

func (s *contactService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.CompanyId != nil {
		company, err := uow.CompanyRepository().FindOne(ctx,
			specification.ByID{ID: *req.CompanyId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, errors.New("company not found")
		}
	}

	contact := &entity.Contact{
		Id:          uuid.New(),
		UserId:      userId,
		CompanyId:   req.CompanyId,
		FullName:    req.FullName,
		Title:       req.Title,
		Email:       req.Email,
		LinkedInURL: req.LinkedInURL,
		Notes:       req.Notes,
	}
	if err := uow.ContactRepository().Create(ctx, contact); err != nil {
		return nil, err
	}
	return contactToResponse(contact), nil
}

func (s *contactService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, errors.New("contact not found")
	}
	return contactToResponse(contact), nil
}

func (s *contactService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, errors.New("contact not found")
	}

	contact.CompanyId = req.CompanyId
	contact.FullName = req.FullName
	contact.Title = req.Title
	contact.Email = req.Email
	contact.LinkedInURL = req.LinkedInURL
	contact.Notes = req.Notes

	if err := uow.ContactRepository().Update(ctx, contact); err != nil {
		return nil, err
	}
	return contactToResponse(contact), nil
}

func (s *contactService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if contact == nil {
		return errors.New("contact not found")
	}
	return uow.ContactRepository().Delete(ctx, id)
}

func contactToResponse(c *entity.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		Id:          c.Id,
		CompanyId:   c.CompanyId,
		FullName:    c.FullName,
		Title:       c.Title,
		Email:       c.Email,
		LinkedInURL: c.LinkedInURL,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
