package events

import (
	"context"
	"fmt"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const DefaultOnboardingQueueName = "directory.onboarding"

// confirmBufferSize bounds confirms left behind by publishes that gave up
// waiting. They are drained by the next publish.
const confirmBufferSize = 64

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type rabbitPublisher struct {
	ch       channel
	queue    string
	confirms <-chan amqp.Confirmation
	log      *zap.Logger

	mu sync.Mutex
	// published counts accepted publishes; the broker numbers delivery tags
	// from 1 in the same order.
	published uint64
}

// NewRabbitMQPublisher opens a channel, declares the durable onboarding queue
// and enables publisher confirms.
func NewRabbitMQPublisher(conn *amqp.Connection, queue string, log *zap.Logger) (contracts.EventPublisher, error) {
	if queue == "" {
		queue = DefaultOnboardingQueueName
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, err
	}

	return newRabbitPublisher(ch, queue, ch.NotifyPublish(make(chan amqp.Confirmation, confirmBufferSize)), log), nil
}

func newRabbitPublisher(ch channel, queue string, confirms <-chan amqp.Confirmation, log *zap.Logger) *rabbitPublisher {
	return &rabbitPublisher{
		ch:       ch,
		queue:    queue,
		confirms: confirms,
		log:      log,
	}
}

// PublishOnboarding sends the event as a persistent JSON message and waits
// for the broker to confirm it.
func (p *rabbitPublisher) PublishOnboarding(ctx context.Context, event contracts.OnboardingEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("rabbitPublisher.PublishOnboarding called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInviteTierKey, event.Tier),
		zap.String(constvars.LoggingPractitionerIDKey, event.PractitionerID),
	)

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublish(err, p.queue)
	}

	p.published++
	return p.awaitConfirm(ctx, p.published)
}

// awaitConfirm waits for the confirm carrying tag. Confirms for earlier tags
// belong to publishes that already returned and are dropped.
func (p *rabbitPublisher) awaitConfirm(ctx context.Context, tag uint64) error {
	for {
		select {
		case confirmed, ok := <-p.confirms:
			if !ok {
				return exceptions.ErrRabbitMQPublish(fmt.Errorf("confirm channel closed"), p.queue)
			}
			if confirmed.DeliveryTag < tag {
				p.log.Warn("rabbitPublisher.awaitConfirm dropped late confirm",
					zap.Uint64("delivery_tag", confirmed.DeliveryTag),
					zap.Uint64("expected_tag", tag),
					zap.Bool("ack", confirmed.Ack),
				)
				continue
			}
			if confirmed.DeliveryTag != tag {
				return exceptions.ErrRabbitMQPublish(fmt.Errorf("confirm for delivery tag %d while waiting for %d", confirmed.DeliveryTag, tag), p.queue)
			}
			if !confirmed.Ack {
				return exceptions.ErrRabbitMQPublish(fmt.Errorf("message not confirmed"), p.queue)
			}
			return nil
		case <-ctx.Done():
			return exceptions.ErrRabbitMQPublish(ctx.Err(), p.queue)
		}
	}
}

func (p *rabbitPublisher) Close() error {
	return p.ch.Close()
}
