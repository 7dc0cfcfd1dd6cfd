package unitofwork

import (
	"context"

	"saedam-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MessageRepository() contract.MessageRepository
}
