package service

import (
	"context"
	"encoding/json"
	"fmt"

	"saedam-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService puts progression events on the in-process bus.
type IPublisherService interface {
	PublishLevelUp(ctx context.Context, anonymousID string, fromLevel, toLevel int) error
	PublishCommunityUnlock(ctx context.Context, anonymousID string, level int) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

// EventEnvelope is the wire shape carried on the bus.
type EventEnvelope struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

func (s *publisherService) publish(event events.Event) error {
	payload, err := json.Marshal(EventEnvelope{
		Type:    event.EventType(),
		Payload: event.Payload(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return s.pubSub.Publish(s.topicName, msg)
}

func (s *publisherService) PublishLevelUp(_ context.Context, anonymousID string, fromLevel, toLevel int) error {
	return s.publish(events.NewLevelUp(anonymousID, fromLevel, toLevel))
}

func (s *publisherService) PublishCommunityUnlock(_ context.Context, anonymousID string, level int) error {
	return s.publish(events.NewCommunityUnlocked(anonymousID, level))
}
