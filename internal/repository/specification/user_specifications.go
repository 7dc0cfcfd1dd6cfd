package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByAnonymousID filters users by their device-issued anonymous id.
type ByAnonymousID struct {
	AnonymousID string
}

func (s ByAnonymousID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("anonymous_id = ?", s.AnonymousID)
}

// ByUserID filters rows owned by a user.
type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
