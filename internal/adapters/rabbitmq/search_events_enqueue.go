package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/contracts"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// messagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// SearchEventsPublisher - реализация SearchEventsPort для RabbitMQ
type SearchEventsPublisher struct {
	producer   messagePublisher
	routingKey string
}

func NewSearchEventsPublisher(producer messagePublisher, routingKey string) (*SearchEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &SearchEventsPublisher{producer: producer, routingKey: routingKey}, nil
}

func (a *SearchEventsPublisher) PublishSearchPerformed(ctx context.Context, event domain.SearchEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "SearchEventsPublisher",
		"routing_key": a.routingKey,
		"event_id":    event.EventID.String(),
	})

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}
	if err := contracts.ValidateEvent(contracts.ListingSearchPerformedEvent, contracts.Version1, body); err != nil {
		adapterLogger.Error("Search event does not match its schema", err, nil)
		return fmt.Errorf("invalid search event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		MessageId:    event.EventID.String(),
		Type:         contracts.ListingSearchPerformedEvent,
		Headers: amqp.Table{
			"x-event-version": contracts.Version1,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish search event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish search event %s: %w", event.EventID, err)
	}

	adapterLogger.Debug("Search event published", nil)
	return nil
}
