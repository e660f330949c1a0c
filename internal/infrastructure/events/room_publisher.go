package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/messaging"
)

// RoomPublisher mirrors room lifecycle onto the broker for out-of-process
// consumers (audit, analytics). A nil publisher is a valid no-op so the server
// runs without a broker.
type RoomPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewRoomPublisher(rabbitmq *messaging.RabbitMQ) *RoomPublisher {
	return &RoomPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *RoomPublisher) publish(ctx context.Context, event string, room *domain.Room) error {
	if p == nil || p.rabbitmq == nil {
		return nil
	}

	payload := messaging.RoomEventData{
		RoomID:      room.ID,
		RoomName:    room.Name,
		MemberCount: room.MemberCount(),
		OccurredAt:  time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, event, messaging.AmqpMessage{
		Event: event,
		Data:  data,
	})
}

func (p *RoomPublisher) PublishRoomCreated(ctx context.Context, room *domain.Room) error {
	return p.publish(ctx, messaging.EventRoomCreated, room)
}

func (p *RoomPublisher) PublishRoomDeleted(ctx context.Context, room *domain.Room) error {
	return p.publish(ctx, messaging.EventRoomDeleted, room)
}

func (p *RoomPublisher) PublishMemberJoined(ctx context.Context, room *domain.Room) error {
	return p.publish(ctx, messaging.EventMemberJoined, room)
}

func (p *RoomPublisher) PublishMemberLeft(ctx context.Context, room *domain.Room) error {
	return p.publish(ctx, messaging.EventMemberLeft, room)
}
