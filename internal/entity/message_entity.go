package entity

import (
	"time"

	"github.com/google/uuid"
)

// DepthAnalysis is the conversation analysis attached to a fairy reply.
type DepthAnalysis struct {
	EmotionalIntensity int `json:"emotional_intensity"`
	TopicRelevance     int `json:"topic_relevance"`
	UserEngagement     int `json:"user_engagement"`
}

type Message struct {
	Id      uuid.UUID
	UserId  uuid.UUID
	Role    string
	Content string

	IsDeep          bool
	AffectionGained int
	Analysis        *DepthAnalysis

	CreatedAt time.Time
}
