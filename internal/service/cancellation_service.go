package service

import (
	"context"
	"strings"
	"time"

	"cancelflow-be/internal/dto"
	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/mapper"
	"cancelflow-be/internal/pkg/logger"
	"cancelflow-be/internal/pkg/mailer"
	"cancelflow-be/internal/repository/cache"
	"cancelflow-be/internal/repository/unitofwork"
	"cancelflow-be/pkg/abtest"
	"cancelflow-be/pkg/apperror"
	"cancelflow-be/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	msgInvalidUserId         = "Invalid user ID format"
	msgInvalidSubscriptionId = "Invalid subscription ID"
	msgIdRequired            = "Cancellation ID is required"
	msgNotFound              = "Cancellation not found"
)

type ICancellationService interface {
	Create(ctx context.Context, req *dto.CreateCancellationRequest) (*dto.CreateCancellationResponse, error)
	Update(ctx context.Context, req *dto.UpdateCancellationRequest) (*dto.CancellationResponse, error)
	Get(ctx context.Context, cancellationId string) (*dto.CancellationResponse, error)
}

type cancellationService struct {
	uowFactory   unitofwork.RepositoryFactory
	assigner     abtest.Assigner
	variantCache cache.VariantCache
	publisher    IPublisherService
	mapper       *mapper.CancellationMapper
	logger       logger.ILogger
	inflight     singleflight.Group
	now          func() time.Time
}

func NewCancellationService(
	uowFactory unitofwork.RepositoryFactory,
	assigner abtest.Assigner,
	variantCache cache.VariantCache,
	publisher IPublisherService,
	logger logger.ILogger,
) ICancellationService {
	if variantCache == nil {
		variantCache = cache.NoopVariantCache{}
	}
	return &cancellationService{
		uowFactory:   uowFactory,
		assigner:     assigner,
		variantCache: variantCache,
		publisher:    publisher,
		mapper:       mapper.NewCancellationMapper(),
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *cancellationService) Create(ctx context.Context, req *dto.CreateCancellationRequest) (*dto.CreateCancellationResponse, error) {
	if !utils.ValidateUserId(req.UserId) {
		return nil, apperror.Validation(msgInvalidUserId)
	}
	if !utils.ValidateSubscriptionId(req.SubscriptionId) {
		return nil, apperror.Validation(msgInvalidSubscriptionId)
	}

	userIdRaw := strings.ToLower(utils.SanitizeInput(req.UserId))
	subscriptionId := utils.SanitizeInput(req.SubscriptionId)
	if subscriptionId == "" {
		return nil, apperror.Validation(msgInvalidSubscriptionId)
	}

	userId, err := uuid.Parse(userIdRaw)
	if err != nil {
		return nil, apperror.Validation(msgInvalidUserId)
	}

	if cached, err := s.variantCache.Get(ctx, userId); err != nil {
		s.logger.Warn("CANCELLATION", "Variant cache read failed", map[string]interface{}{
			"user_id": userIdRaw,
			"error":   err.Error(),
		})
	} else if cached != nil {
		return &dto.CreateCancellationResponse{
			Id:              cached.CancellationID.String(),
			DownsellVariant: string(cached.Variant),
		}, nil
	}

	// concurrent initiations for one user share a single store round trip
	v, err, _ := s.inflight.Do(userId.String(), func() (interface{}, error) {
		return s.createOrGet(ctx, userId, userIdRaw, subscriptionId)
	})
	if err != nil {
		return nil, err
	}
	return s.mapper.ToCreateResponse(v.(*entity.Cancellation)), nil
}

// createOrGet returns the user's record, creating it (and flagging the subscription) when absent.
func (s *cancellationService) createOrGet(ctx context.Context, userId uuid.UUID, userIdRaw, subscriptionId string) (*entity.Cancellation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.CancellationRepository().FindByUserID(ctx, userId)
	if err != nil {
		return nil, apperror.Persistence("Failed to create cancellation record", err)
	}
	if existing != nil {
		s.remember(ctx, existing)
		return existing, nil
	}

	now := s.now()
	record := &entity.Cancellation{
		ID:              uuid.New(),
		UserID:          userId,
		SubscriptionID:  subscriptionId,
		DownsellVariant: s.assigner.Assign(userIdRaw),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Persistence("Failed to create cancellation record", err)
	}
	defer uow.Rollback()

	stored, created, err := uow.CancellationRepository().CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, apperror.Persistence("Failed to create cancellation record", err)
	}

	if created {
		changed, err := uow.SubscriptionRepository().UpdateStatusByUserID(ctx, userId,
			[]entity.SubscriptionStatus{entity.SubscriptionStatusActive},
			entity.SubscriptionStatusPendingCancellation,
		)
		if err != nil {
			return nil, apperror.Persistence("Failed to update subscription status", err)
		}
		if changed == 0 {
			s.logger.Warn("CANCELLATION", "No active subscription to flag as pending cancellation", map[string]interface{}{
				"user_id":         userIdRaw,
				"subscription_id": subscriptionId,
			})
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Persistence("Failed to create cancellation record", err)
	}

	s.remember(ctx, stored)

	if created {
		s.logger.Info("CANCELLATION", "Cancellation created", map[string]interface{}{
			"cancellation_id": stored.ID.String(),
			"user_id":         userIdRaw,
			"variant":         string(stored.DownsellVariant),
			"policy":          s.assigner.Policy(),
		})
		s.publish(ctx, entity.EventCancellationCreated, stored, map[string]interface{}{
			"subscription_id":  stored.SubscriptionID,
			"downsell_variant": string(stored.DownsellVariant),
		})
	}

	return stored, nil
}

func (s *cancellationService) Update(ctx context.Context, req *dto.UpdateCancellationRequest) (*dto.CancellationResponse, error) {
	id, err := s.parseId(req.CancellationId)
	if err != nil {
		return nil, err
	}

	patch := entity.CancellationPatch{AcceptedDownsell: req.AcceptedDownsell.Ptr()}
	if req.Reason.Set {
		reason := utils.SanitizeInput(req.Reason.Value)
		patch.Reason = &reason
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Persistence("Failed to update cancellation", err)
	}
	defer uow.Rollback()

	repo := uow.CancellationRepository()
	existing, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("Failed to update cancellation", err)
	}
	if existing == nil {
		return nil, apperror.NotFound(msgNotFound)
	}

	if patch.IsEmpty() {
		return s.mapper.ToResponse(existing), nil
	}

	if err := repo.Update(ctx, id, patch); err != nil {
		return nil, apperror.Persistence("Failed to update cancellation", err)
	}
	updated, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("Failed to update cancellation", err)
	}
	if updated == nil {
		// record expired between the two reads (memory store)
		return nil, apperror.NotFound(msgNotFound)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Persistence("Failed to update cancellation", err)
	}

	s.publish(ctx, entity.EventCancellationUpdated, updated, patchData(patch))
	if patch.AcceptedDownsell != nil && *patch.AcceptedDownsell {
		s.publish(ctx, entity.EventDownsellAccepted, updated, map[string]interface{}{
			"offer":            offerFor(updated),
			"subscription_id":  updated.SubscriptionID,
			"downsell_variant": string(updated.DownsellVariant),
		})
	}

	return s.mapper.ToResponse(updated), nil
}

func (s *cancellationService) Get(ctx context.Context, cancellationId string) (*dto.CancellationResponse, error) {
	id, err := s.parseId(cancellationId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.CancellationRepository().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("Failed to load cancellation", err)
	}
	if record == nil {
		return nil, apperror.NotFound(msgNotFound)
	}

	return s.mapper.ToResponse(record), nil
}

// parseId treats ids that are not UUIDs as unknown records rather than bad input.
func (s *cancellationService) parseId(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperror.Validation(msgIdRequired)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NotFound(msgNotFound)
	}
	return id, nil
}

func (s *cancellationService) remember(ctx context.Context, c *entity.Cancellation) {
	err := s.variantCache.Set(ctx, c.UserID, cache.Assignment{
		CancellationID: c.ID,
		Variant:        c.DownsellVariant,
	})
	if err != nil {
		s.logger.Warn("CANCELLATION", "Variant cache write failed", map[string]interface{}{
			"user_id": c.UserID.String(),
			"error":   err.Error(),
		})
	}
}

func (s *cancellationService) publish(ctx context.Context, eventType string, c *entity.Cancellation, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.Publish(ctx, dto.CancellationEventMessage{
		Type:           eventType,
		CancellationId: c.ID.String(),
		UserId:         c.UserID.String(),
		Data:           data,
		OccurredAt:     s.now(),
	})
	if err != nil {
		s.logger.Error("CANCELLATION", "Failed to publish event", map[string]interface{}{
			"type":            eventType,
			"cancellation_id": c.ID.String(),
			"error":           err.Error(),
		})
	}
}

func patchData(p entity.CancellationPatch) map[string]interface{} {
	data := map[string]interface{}{}
	if p.Reason != nil {
		data["reason"] = *p.Reason
	}
	if p.AcceptedDownsell != nil {
		data["accepted_downsell"] = *p.AcceptedDownsell
	}
	return data
}

// offerFor tells which retention offer an accepted record took: the special discount
// leaves its note on the reason.
func offerFor(c *entity.Cancellation) string {
	if c.Reason != nil && strings.HasSuffix(*c.Reason, strings.TrimSpace(utils.SpecialDiscountNote)) {
		return string(mailer.OfferSpecialDiscount)
	}
	return string(mailer.OfferDownsell)
}
