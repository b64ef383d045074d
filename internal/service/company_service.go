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

type ICompanyService interface {
	GetAll(ctx context.Context, userId uuid.UUID, status string) ([]*dto.CompanyResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.CompanyResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type companyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCompanyService(uowFactory unitofwork.RepositoryFactory) ICompanyService {
	return &companyService{uowFactory: uowFactory}
}

func (s *companyService) GetAll(ctx context.Context, userId uuid.UUID, status string) ([]*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	companies, err := uow.CompanyRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CompanyResponse, len(companies))
	for i, c := range companies {
		result[i] = companyToResponse(c)
	}
	return result, nil
}

func (s *companyService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.CompanyRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByName{Name: req.Name},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("company already exists")
	}

	company := &entity.Company{
		Id:       uuid.New(),
		UserId:   userId,
		Name:     req.Name,
		Industry: req.Industry,
		Size:     req.Size,
		Location: req.Location,
		Website:  req.Website,
		Status:   entity.CompanyStatusSaved,
	}
	if err := uow.CompanyRepository().Create(ctx, company); err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

func (s *companyService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, errors.New("company not found")
	}
	return companyToResponse(company), nil
}

func (s *companyService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, errors.New("company not found")
	}

	company.Name = req.Name
	company.Industry = req.Industry
	company.Size = req.Size
	company.Location = req.Location
	company.Website = req.Website
	if req.Status != "" {
		company.Status = entity.CompanyStatus(req.Status)
	}

	if err := uow.CompanyRepository().Update(ctx, company); err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

func (s *companyService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if company == nil {
		return errors.New("company not found")
	}
	return uow.CompanyRepository().Delete(ctx, id)
}

func companyToResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		Id:        c.Id,
		Name:      c.Name,
		Industry:  c.Industry,
		Size:      c.Size,
		Location:  c.Location,
		Website:   c.Website,
		Status:    string(c.Status),
		Rationale: c.Rationale,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
