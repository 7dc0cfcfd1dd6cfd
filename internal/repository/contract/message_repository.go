package contract

import (
	"context"

	"saedam-be/internal/entity"
	"saedam-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
}
