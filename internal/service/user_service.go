package service

import (
	"context"
	"errors"

	"jobreach-be/internal/dto"
	"jobreach-be/internal/repository/specification"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/pkg/linking"

	"github.com/google/uuid"
)

type IUserService interface {
	// Me returns the account view. When the caller still carries a
	// guest session id this doubles as the profile_mount trigger point.
	Me(ctx context.Context, userId uuid.UUID, guestSessionId string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory  unitofwork.RepositoryFactory
	linkService ILinkService
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, linkService ILinkService) IUserService {
	return &userService{
		uowFactory:  uowFactory,
		linkService: linkService,
	}
}

func (s *userService) Me(ctx context.Context, userId uuid.UUID, guestSessionId string) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	// Trigger point: profile_mount. The safety net for sessions that
	// slipped past the signup and callback triggers.
	if s.linkService != nil && guestSessionId != "" {
		s.linkService.TriggerReconcile(ctx, userId, guestSessionId, linking.OriginProfileMount)
	}

	resp := &dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
	if user.AvatarURL != nil {
		resp.AvatarURL = *user.AvatarURL
	}
	return resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	user.FullName = req.FullName
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	resp := &dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
	if user.AvatarURL != nil {
		resp.AvatarURL = *user.AvatarURL
	}
	return resp, nil
}
