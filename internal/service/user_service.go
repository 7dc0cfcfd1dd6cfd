package service

import (
	"context"
	"fmt"

	"saedam-be/internal/dto"
	"saedam-be/internal/repository/specification"
	"saedam-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetUser(ctx context.Context, anonymousID string) (*dto.UserResponse, error)
	GetMessages(ctx context.Context, anonymousID string) ([]*dto.MessageResponse, error)
	ClearMessages(ctx context.Context, anonymousID string) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetUser(ctx context.Context, anonymousID string) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByAnonymousID{AnonymousID: anonymousID})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	return &dto.UserResponse{
		Id:                 user.Id,
		AnonymousID:        user.AnonymousId,
		Level:              user.Level,
		Points:             user.Points,
		TotalConversations: user.TotalConversations,
		DeepConversations:  user.DeepConversations,
		ConsecutiveDays:    user.ConsecutiveDays,
		LastVisitDate:      user.LastVisitDate,
		CommunityUnlocked:  user.CommunityUnlocked,
		CreatedAt:          user.CreatedAt,
	}, nil
}

func (s *userService) GetMessages(ctx context.Context, anonymousID string) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByAnonymousID{AnonymousID: anonymousID})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		// A device that never chatted has an empty transcript, not an error.
		return []*dto.MessageResponse{}, nil
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByUserID{UserID: user.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	out := make([]*dto.MessageResponse, len(messages))
	for i, msg := range messages {
		out[i] = &dto.MessageResponse{
			Id:              msg.Id,
			Role:            msg.Role,
			Content:         msg.Content,
			IsDeep:          msg.IsDeep,
			AffectionGained: msg.AffectionGained,
			CreatedAt:       msg.CreatedAt,
		}
	}
	return out, nil
}

func (s *userService) ClearMessages(ctx context.Context, anonymousID string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByAnonymousID{AnonymousID: anonymousID})
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil
	}
	return uow.MessageRepository().DeleteAllByUserId(ctx, user.Id)
}
