package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Role    string    `gorm:"type:varchar(20);not null"`
	Content string    `gorm:"type:text;not null"`

	IsDeep          bool           `gorm:"not null;default:false"`
	AffectionGained int            `gorm:"not null;default:0"`
	Analysis        datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
