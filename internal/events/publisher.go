package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/contracts"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// PublishMetadata carries tracing ids from the triggering request.
type PublishMetadata struct {
	CorrelationID string
	CausationID   string
}

type CartEventsPublisher interface {
	PublishCartCheckedOut(ctx context.Context, c contracts.CheckedOutCart, metadata PublishMetadata) error
}

type RabbitCartEventsPublisher struct {
	ch       amqpChannel
	sequence SequenceRepository
	logger   *zap.Logger
}

func NewRabbitCartEventsPublisher(conn *amqp.Connection, sequence SequenceRepository, logger *zap.Logger) (*RabbitCartEventsPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newPublisher(ch, sequence, logger)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newPublisher(ch amqpChannel, sequence SequenceRepository, logger *zap.Logger) (*RabbitCartEventsPublisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", EventsExchange, err)
	}
	return &RabbitCartEventsPublisher{ch: ch, sequence: sequence, logger: logger}, nil
}

func (p *RabbitCartEventsPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitCartEventsPublisher) PublishCartCheckedOut(ctx context.Context, c contracts.CheckedOutCart, metadata PublishMetadata) error {
	seq, err := p.sequence.NextSequence(ctx, c.CartID)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	env := contracts.BuildCartCheckedOutEvent(c, contracts.EnvelopeOptions{
		PartitionKey:  c.CartID,
		Sequence:      seq,
		CorrelationID: metadata.CorrelationID,
		CausationID:   metadata.CausationID,
	})

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", contracts.CartCheckedOutEventName, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		CartCheckedOutRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     env.EventID,
			CorrelationId: env.CorrelationID,
			Timestamp:     env.OccurredAt,
			Type:          env.EventName,
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", contracts.CartCheckedOutEventName, err)
	}

	p.logger.Info("cart checked out event published",
		zap.String("event_id", env.EventID), zap.String("cart_id", c.CartID), zap.Int64("sequence", seq))
	return nil
}

// LogPublisher stands in when no broker is configured; it only logs the event.
type LogPublisher struct {
	sequence SequenceRepository
	logger   *zap.Logger
}

func NewLogPublisher(sequence SequenceRepository, logger *zap.Logger) *LogPublisher {
	return &LogPublisher{sequence: sequence, logger: logger}
}

func (p *LogPublisher) PublishCartCheckedOut(ctx context.Context, c contracts.CheckedOutCart, metadata PublishMetadata) error {
	seq, err := p.sequence.NextSequence(ctx, c.CartID)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	env := contracts.BuildCartCheckedOutEvent(c, contracts.EnvelopeOptions{
		Sequence:      seq,
		CorrelationID: metadata.CorrelationID,
		CausationID:   metadata.CausationID,
	})
	p.logger.Info("cart checked out (no broker configured)",
		zap.String("event_id", env.EventID),
		zap.String("cart_id", c.CartID),
		zap.Int64("sequence", seq),
		zap.String("total", env.Payload.TotalAmount.String()))
	return nil
}
