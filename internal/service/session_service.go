package service

import (
	"context"
	"strings"

	"cancelflow-be/internal/dto"
	"cancelflow-be/internal/mapper"
	"cancelflow-be/internal/repository/unitofwork"
	"cancelflow-be/pkg/apperror"

	"github.com/google/uuid"
)

type ISessionService interface {
	GetSession(ctx context.Context, userId string) (*dto.SessionResponse, error)
}

type sessionService struct {
	uowFactory   unitofwork.RepositoryFactory
	mapper       *mapper.SubscriptionMapper
	mockUserId   uuid.UUID
	mockUserMail string
}

// NewSessionService builds the session lookup. mockUserId/mockUserEmail describe the demo
// user that is served when a request carries no token.
func NewSessionService(uowFactory unitofwork.RepositoryFactory, mockUserId, mockUserEmail string) ISessionService {
	// an unparsable demo id leaves uuid.Nil, which GetSession never matches
	demoId, _ := uuid.Parse(strings.TrimSpace(mockUserId))
	return &sessionService{
		uowFactory:   uowFactory,
		mapper:       mapper.NewSubscriptionMapper(),
		mockUserId:   demoId,
		mockUserMail: mockUserEmail,
	}
}

func (s *sessionService) GetSession(ctx context.Context, userId string) (*dto.SessionResponse, error) {
	id, err := uuid.Parse(userId)
	if err != nil {
		return nil, apperror.Validation(msgInvalidUserId)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	subscription, err := uow.SubscriptionRepository().FindByUserID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("Failed to load subscription", err)
	}

	res := &dto.SessionResponse{
		UserId:       id.String(),
		Subscription: s.mapper.ToSessionResponse(subscription),
	}
	switch {
	case subscription != nil:
		res.Email = subscription.Email
	case s.mockUserId != uuid.Nil && id == s.mockUserId:
		res.Email = s.mockUserMail
	default:
		return nil, apperror.NotFound("No subscription found for user")
	}

	return res, nil
}
