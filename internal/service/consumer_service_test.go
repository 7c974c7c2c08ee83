package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"cancelflow-be/internal/dto"
	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/pkg/logger"
	"cancelflow-be/internal/pkg/mailer"
	"cancelflow-be/pkg/abtest"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to    string
	offer mailer.Offer
	price int64
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) SendOfferAccepted(toEmail string, offer mailer.Offer, newMonthlyPrice int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: toEmail, offer: offer, price: newMonthlyPrice})
	return nil
}

func (m *recordingMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

func TestConsumer_RecordsAuditTrailAndMailsOffer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env := newTestEnv(t)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	mails := &recordingMailer{}
	consumer := NewConsumerService(pubSub, "cancellations", env.factory, nil, mails, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	svc := NewCancellationService(env.factory, abtest.NewHashAssigner(), nil,
		NewPublisherService("cancellations", pubSub), logger.NewNopLogger())

	created, err := svc.Create(ctx, &dto.CreateCancellationRequest{UserId: userB, SubscriptionId: "sub_004"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, &dto.UpdateCancellationRequest{
		CancellationId:   created.Id,
		AcceptedDownsell: dto.OptionalBool{Set: true, Value: true},
	})
	require.NoError(t, err)

	cancellationId := uuid.MustParse(created.Id)
	assert.Eventually(t, func() bool {
		evts, err := env.factory.NewUnitOfWork(ctx).CancellationEventRepository().FindAllByCancellationID(ctx, cancellationId)
		return err == nil && len(evts) == 3
	}, 2*time.Second, 10*time.Millisecond)

	evts, err := env.factory.NewUnitOfWork(ctx).CancellationEventRepository().FindAllByCancellationID(ctx, cancellationId)
	require.NoError(t, err)
	types := make([]string, 0, len(evts))
	for _, e := range evts {
		types = append(types, e.Type)
	}
	assert.ElementsMatch(t, []string{
		entity.EventCancellationCreated,
		entity.EventCancellationUpdated,
		entity.EventDownsellAccepted,
	}, types)

	assert.Eventually(t, func() bool { return len(mails.all()) == 1 }, 2*time.Second, 10*time.Millisecond)
	sent := mails.all()[0]
	assert.Equal(t, "user4@example.com", sent.to)
	assert.Equal(t, mailer.OfferDownsell, sent.offer)
	assert.Equal(t, int64(1500), sent.price)
}

func TestConsumer_AcksUndecodableMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env := newTestEnv(t)
	cs := NewConsumerService(nil, "cancellations", env.factory, nil, nil, logger.NewNopLogger()).(*consumerService)

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	cs.processMessage(ctx, msg)

	select {
	case <-msg.Acked():
	case <-msg.Nacked():
		t.Fatal("undecodable message was nacked")
	default:
		t.Fatal("message was neither acked nor nacked")
	}

	msg = message.NewMessage(watermill.NewUUID(), []byte(`{"type":"CANCELLATION_CREATED","cancellation_id":"x","user_id":"y"}`))
	cs.processMessage(ctx, msg)
	select {
	case <-msg.Acked():
	default:
		t.Fatal("message with malformed ids was not acked")
	}
}
