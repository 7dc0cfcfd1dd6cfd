package events

import "time"

// Event types published on the in-process bus.
const (
	TypeLevelUp           = "AFFECTION_LEVEL_UP"
	TypeCommunityUnlocked = "COMMUNITY_UNLOCKED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event.
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewLevelUp records a user crossing into a new affection level.
func NewLevelUp(anonymousID string, fromLevel, toLevel int) Event {
	return BaseEvent{
		Type: TypeLevelUp,
		Data: map[string]interface{}{
			"anonymous_id": anonymousID,
			"from_level":   fromLevel,
			"to_level":     toLevel,
		},
		OccurredAt: time.Now(),
	}
}

// NewCommunityUnlocked records a user reaching the community-unlock
// level for the first time.
func NewCommunityUnlocked(anonymousID string, level int) Event {
	return BaseEvent{
		Type: TypeCommunityUnlocked,
		Data: map[string]interface{}{
			"anonymous_id": anonymousID,
			"level":        level,
		},
		OccurredAt: time.Now(),
	}
}
