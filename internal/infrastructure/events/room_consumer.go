package events

import (
	"context"
	"encoding/json"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/logging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/messaging"
	"github.com/rabbitmq/amqp091-go"
)

// roomConsumer drains the rooms queue and writes an audit trail through the
// logger. Rooms themselves stay volatile; this is observability, not storage.
type roomConsumer struct {
	rabbitmq *messaging.RabbitMQ
	logger   logging.Logger
}

func NewRoomConsumer(rabbitmq *messaging.RabbitMQ, logger logging.Logger) *roomConsumer {
	return &roomConsumer{
		rabbitmq: rabbitmq,
		logger:   logger,
	}
}

func (c *roomConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.RoomsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message messaging.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			c.logger.Errorf("failed to unmarshal amqp message: %v", err)
			return err
		}

		var payload messaging.RoomEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			c.logger.Errorf("failed to unmarshal room event data: %v", err)
			return err
		}

		c.logger.Info(logging.RabbitMQ, logging.Lifecycle, message.Event, map[logging.ExtraKey]any{
			logging.RoomID: payload.RoomID,
			"memberCount":  payload.MemberCount,
		})

		return nil
	})
}
