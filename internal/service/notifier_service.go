package service

import (
	"context"
	"encoding/json"

	"saedam-be/internal/pkg/logger"
	"saedam-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// INotifierService forwards progression events from the bus to
// connected websocket clients.
type INotifierService interface {
	Consume(ctx context.Context) error
}

type notifierService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
	logger    logger.ILogger
}

func NewNotifierService(pubSub *gochannel.GoChannel, topicName string, hub *websocket.Hub, log logger.ILogger) INotifierService {
	return &notifierService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
		logger:    log,
	}
}

func (s *notifierService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *notifierService) processMessage(msg *message.Message) {
	var envelope EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Error("Notifier", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	anonymousID, _ := envelope.Payload["anonymous_id"].(string)
	if anonymousID == "" {
		msg.Ack()
		return
	}

	s.hub.SendToUser(anonymousID, msg.Payload)
	s.logger.Info("Notifier", "Delivered progression event", map[string]interface{}{
		"type":         envelope.Type,
		"anonymous_id": anonymousID,
	})
	msg.Ack()
}
