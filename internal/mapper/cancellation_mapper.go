package mapper

import (
	"cancelflow-be/internal/dto"
	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/model"
)

type CancellationMapper struct{}

func NewCancellationMapper() *CancellationMapper {
	return &CancellationMapper{}
}

func (m *CancellationMapper) ToEntity(c *model.Cancellation) *entity.Cancellation {
	if c == nil {
		return nil
	}
	return &entity.Cancellation{
		ID:               c.ID,
		UserID:           c.UserID,
		SubscriptionID:   c.SubscriptionID,
		DownsellVariant:  entity.DownsellVariant(c.DownsellVariant),
		Reason:           c.Reason,
		AcceptedDownsell: c.AcceptedDownsell,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (m *CancellationMapper) ToModel(c *entity.Cancellation) *model.Cancellation {
	if c == nil {
		return nil
	}
	return &model.Cancellation{
		ID:               c.ID,
		UserID:           c.UserID,
		SubscriptionID:   c.SubscriptionID,
		DownsellVariant:  string(c.DownsellVariant),
		Reason:           c.Reason,
		AcceptedDownsell: c.AcceptedDownsell,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (m *CancellationMapper) ToResponse(c *entity.Cancellation) *dto.CancellationResponse {
	if c == nil {
		return nil
	}
	return &dto.CancellationResponse{
		Id:               c.ID.String(),
		UserId:           c.UserID.String(),
		SubscriptionId:   c.SubscriptionID,
		DownsellVariant:  string(c.DownsellVariant),
		Reason:           c.Reason,
		AcceptedDownsell: c.AcceptedDownsell,
		CreatedAt:        c.CreatedAt,
	}
}

func (m *CancellationMapper) ToCreateResponse(c *entity.Cancellation) *dto.CreateCancellationResponse {
	if c == nil {
		return nil
	}
	return &dto.CreateCancellationResponse{
		Id:              c.ID.String(),
		DownsellVariant: string(c.DownsellVariant),
	}
}
