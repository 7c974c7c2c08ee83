package service

import (
	"context"
	"encoding/json"

	"cancelflow-be/internal/dto"
	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/pkg/logger"
	"cancelflow-be/internal/pkg/mailer"
	"cancelflow-be/internal/repository/unitofwork"
	"cancelflow-be/pkg/events"
	pktNats "cancelflow-be/pkg/nats"
	"cancelflow-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	relay        *pktNats.Relay
	emailService mailer.IEmailService
	logger       logger.ILogger
}

// NewConsumerService wires the audit trail consumer. relay and emailService may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	relay *pktNats.Relay,
	emailService mailer.IEmailService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		uowFactory:   uowFactory,
		relay:        relay,
		emailService: emailService,
		logger:       logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CancellationEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // never retry a message that cannot be decoded
		return
	}

	cancellationId, errC := uuid.Parse(payload.CancellationId)
	userId, errU := uuid.Parse(payload.UserId)
	if errC != nil || errU != nil {
		cs.logger.Error("CONSUMER", "Event carries malformed ids", map[string]interface{}{
			"type":            payload.Type,
			"cancellation_id": payload.CancellationId,
			"user_id":         payload.UserId,
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("CONSUMER", "Failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	err := uow.CancellationEventRepository().Create(ctx, &entity.CancellationEvent{
		ID:             uuid.New(),
		CancellationID: cancellationId,
		UserID:         userId,
		Type:           payload.Type,
		Payload:        payload.Data,
		OccurredAt:     payload.OccurredAt,
	})
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to store cancellation event", map[string]interface{}{
			"type":  payload.Type,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("CONSUMER", "Failed to commit transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	cs.relay.Forward(ctx, events.NewCancellationEvent(
		payload.Type,
		payload.CancellationId,
		payload.UserId,
		payload.Data,
		payload.OccurredAt,
	))

	if payload.Type == entity.EventDownsellAccepted {
		cs.notifyOfferAccepted(ctx, uow, userId, payload)
	}

	cs.logger.Debug("CONSUMER", "Event processed", map[string]interface{}{
		"type":            payload.Type,
		"cancellation_id": payload.CancellationId,
	})
	msg.Ack()
}

// notifyOfferAccepted mails the new price. Failures are logged only; the event is already recorded.
func (cs *consumerService) notifyOfferAccepted(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, payload dto.CancellationEventMessage) {
	if cs.emailService == nil {
		return
	}

	subscription, err := uow.SubscriptionRepository().FindByUserID(ctx, userId)
	if err != nil || subscription == nil || subscription.Email == "" {
		cs.logger.Warn("CONSUMER", "No subscription to notify about accepted offer", map[string]interface{}{
			"user_id": payload.UserId,
		})
		return
	}

	offer := mailer.OfferDownsell
	price := utils.DownsellPrice(subscription.MonthlyPrice)
	if o, _ := payload.Data["offer"].(string); o == string(mailer.OfferSpecialDiscount) {
		offer = mailer.OfferSpecialDiscount
		price = utils.SpecialDiscountPrice(subscription.MonthlyPrice)
	}

	if err := cs.emailService.SendOfferAccepted(subscription.Email, offer, price); err != nil {
		cs.logger.Error("CONSUMER", "Failed to send offer confirmation", map[string]interface{}{
			"user_id": payload.UserId,
			"error":   err.Error(),
		})
	}
}
