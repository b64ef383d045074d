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

type IProfileService interface {
	UpsertProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	GetSummary(ctx context.Context, userId uuid.UUID) (*dto.SummaryResponse, error)
	UpsertCriteria(ctx context.Context, userId uuid.UUID, req *dto.UpsertCriteriaRequest) (*dto.CriteriaResponse, error)
	GetCriteria(ctx context.Context, userId uuid.UUID) (*dto.CriteriaResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory) IProfileService {
	return &profileService{uowFactory: uowFactory}
}

func (s *profileService) UpsertProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile := &entity.UserProfile{
		Id:              uuid.New(),
		UserId:          userId,
		Headline:        req.Headline,
		Location:        req.Location,
		YearsExperience: req.YearsExperience,
		Skills:          req.Skills,
		Experience:      req.Experience,
	}
	if err := uow.ProfileRepository().UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profileToResponse(profile), nil
}

func (s *profileService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindProfile(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found")
	}
	return profileToResponse(profile), nil
}

func (s *profileService) GetSummary(ctx context.Context, userId uuid.UUID) (*dto.SummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summary, err := uow.ProfileRepository().FindSummary(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, errors.New("summary not found")
	}
	return &dto.SummaryResponse{
		Id:        summary.Id,
		Summary:   summary.Summary,
		Version:   summary.Version,
		CreatedAt: summary.CreatedAt,
	}, nil
}

func (s *profileService) UpsertCriteria(ctx context.Context, userId uuid.UUID, req *dto.UpsertCriteriaRequest) (*dto.CriteriaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	criteria := &entity.TargetCriteria{
		Id:            uuid.New(),
		UserId:        userId,
		Roles:         req.Roles,
		Industries:    req.Industries,
		CompanySizes:  req.CompanySizes,
		Locations:     req.Locations,
		ExcludedNames: req.ExcludedNames,
	}
	if err := uow.ProfileRepository().UpsertCriteria(ctx, criteria); err != nil {
		return nil, err
	}
	return criteriaToResponse(criteria), nil
}

func (s *profileService) GetCriteria(ctx context.Context, userId uuid.UUID) (*dto.CriteriaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	criteria, err := uow.ProfileRepository().FindCriteria(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if criteria == nil {
		return nil, errors.New("target criteria not found")
	}
	return criteriaToResponse(criteria), nil
}

func profileToResponse(p *entity.UserProfile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Id:              p.Id,
		Headline:        p.Headline,
		Location:        p.Location,
		YearsExperience: p.YearsExperience,
		Skills:          p.Skills,
		Experience:      p.Experience,
		FromGuestMerge:  p.SourceSessionId != nil,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func criteriaToResponse(c *entity.TargetCriteria) *dto.CriteriaResponse {
	return &dto.CriteriaResponse{
		Id:            c.Id,
		Roles:         c.Roles,
		Industries:    c.Industries,
		CompanySizes:  c.CompanySizes,
		Locations:     c.Locations,
		ExcludedNames: c.ExcludedNames,
		UpdatedAt:     c.UpdatedAt,
	}
}
