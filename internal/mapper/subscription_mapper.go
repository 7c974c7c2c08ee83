package mapper

import (
	"cancelflow-be/internal/dto"
	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		ID:           s.ID,
		UserID:       s.UserID,
		Email:        s.Email,
		MonthlyPrice: s.MonthlyPrice,
		Status:       entity.SubscriptionStatus(s.Status),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		ID:           s.ID,
		UserID:       s.UserID,
		Email:        s.Email,
		MonthlyPrice: s.MonthlyPrice,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToSessionResponse(s *entity.Subscription) *dto.SessionSubscription {
	if s == nil {
		return nil
	}
	return &dto.SessionSubscription{
		Id:           s.ID,
		MonthlyPrice: s.MonthlyPrice,
		Status:       string(s.Status),
	}
}
