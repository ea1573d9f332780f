package events

import (
	"context"

	"hotelbooker/pkg/kafka"
	"hotelbooker/pkg/logger"
)

// Publisher emits domain events. Services call it after a successful
// write; publish failures are logged but never fail the request.
type Publisher interface {
	PublishBooking(ctx context.Context, eventType string, payload any, roomID string)
	PublishRoom(ctx context.Context, eventType string, payload any, roomID string)
	Close() error
}

type kafkaPublisher struct {
	bookings *kafka.Producer
	rooms    *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(bookings, rooms *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		bookings: bookings,
		rooms:    rooms,
		log:      log,
	}
}

func (p *kafkaPublisher) PublishBooking(ctx context.Context, eventType string, payload any, roomID string) {
	p.publish(ctx, p.bookings, eventType, payload, roomID)
}

func (p *kafkaPublisher) PublishRoom(ctx context.Context, eventType string, payload any, roomID string) {
	p.publish(ctx, p.rooms, eventType, payload, roomID)
}

func (p *kafkaPublisher) publish(ctx context.Context, producer *kafka.Producer, eventType string, payload any, roomID string) {
	msg := kafka.NewMessage().
		WithKey(roomID).
		WithValue(payload).
		WithEventType(eventType).
		WithSource("calendar").
		Build()

	if err := producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish event", "event_type", eventType, "room_id", roomID, "error", err)
		return
	}

	p.log.Debug("Event published", "event_type", eventType, "room_id", roomID)
}

func (p *kafkaPublisher) Close() error {
	err := p.bookings.Close()
	if roomsErr := p.rooms.Close(); err == nil {
		err = roomsErr
	}
	return err
}

// NopPublisher discards all events. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishBooking(ctx context.Context, eventType string, payload any, roomID string) {
}

func (NopPublisher) PublishRoom(ctx context.Context, eventType string, payload any, roomID string) {}

func (NopPublisher) Close() error { return nil }
