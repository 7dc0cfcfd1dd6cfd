package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	Id                 uuid.UUID `json:"id"`
	AnonymousID        string    `json:"anonymous_id"`
	Level              int       `json:"level"`
	Points             int       `json:"points"`
	TotalConversations int       `json:"total_conversations"`
	DeepConversations  int       `json:"deep_conversations"`
	ConsecutiveDays    int       `json:"consecutive_days"`
	LastVisitDate      time.Time `json:"last_visit_date"`
	CommunityUnlocked  bool      `json:"community_unlocked"`
	CreatedAt          time.Time `json:"created_at"`
}

type MessageResponse struct {
	Id              uuid.UUID `json:"id"`
	Role            string    `json:"role"`
	Content         string    `json:"content"`
	IsDeep          bool      `json:"is_deep"`
	AffectionGained int       `json:"affection_gained"`
	CreatedAt       time.Time `json:"created_at"`
}
