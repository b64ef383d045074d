package mapper

import (
	"jobreach-be/internal/entity"
	"jobreach-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	return &entity.Plan{
		Id:           p.Id,
		Name:         p.Name,
		Slug:         p.Slug,
		Price:        p.Price,
		Description:  p.Description,
		AiDailyLimit: p.AiDailyLimit,
		CreatedAt:    p.CreatedAt,
	}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:               s.Id,
		UserId:           s.UserId,
		PlanId:           s.PlanId,
		OrderId:          s.OrderId,
		Status:           entity.SubscriptionStatus(s.Status),
		CurrentPeriodEnd: s.CurrentPeriodEnd,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:               s.Id,
		UserId:           s.UserId,
		PlanId:           s.PlanId,
		OrderId:          s.OrderId,
		Status:           string(s.Status),
		CurrentPeriodEnd: s.CurrentPeriodEnd,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
