package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is one anonymous device identity plus its affection progression.
type User struct {
	Id          uuid.UUID
	AnonymousId string

	Level              int
	Points             int
	TotalConversations int
	DeepConversations  int
	ConsecutiveDays    int
	LastVisitDate      time.Time

	CommunityUnlocked bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
