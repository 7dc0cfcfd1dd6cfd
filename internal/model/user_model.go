package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AnonymousId string    `gorm:"type:varchar(64);uniqueIndex;not null"`

	Level              int       `gorm:"not null;default:1"`
	Points             int       `gorm:"not null;default:0"`
	TotalConversations int       `gorm:"not null;default:0"`
	DeepConversations  int       `gorm:"not null;default:0"`
	ConsecutiveDays    int       `gorm:"not null;default:0"`
	LastVisitDate      time.Time `gorm:"not null"`

	CommunityUnlocked bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
