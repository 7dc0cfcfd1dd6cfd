package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saedam-be/internal/constant"
	"saedam-be/internal/dto"
	"saedam-be/internal/entity"
	"saedam-be/internal/pkg/logger"
	"saedam-be/internal/repository/specification"
	"saedam-be/internal/repository/unitofwork"
	"saedam-be/pkg/companion/affection"
	"saedam-be/pkg/fairy"

	"github.com/google/uuid"
)

// ErrFairyUnavailable marks turns that failed because the language model
// backend could not produce a reply.
var ErrFairyUnavailable = errors.New("fairy provider unavailable")

// IChatService runs one authoritative conversation turn for a user.
type IChatService interface {
	SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   fairy.Provider
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider fairy.Provider,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		provider:   provider,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	user, err := s.findOrCreateUser(ctx, uow, req.AnonymousID, now)
	if err != nil {
		return nil, err
	}

	// The user's own message is stored before the model call: a failed
	// turn keeps the utterance but nothing else.
	userMsg := entity.Message{
		Id:        uuid.New(),
		UserId:    user.Id,
		Role:      constant.ChatMessageRoleUser,
		Content:   req.Message,
		CreatedAt: now,
	}
	if err := uow.MessageRepository().Create(ctx, &userMsg); err != nil {
		return nil, fmt.Errorf("store user message: %w", err)
	}

	history, err := s.loadHistory(ctx, uow, user.Id)
	if err != nil {
		return nil, err
	}

	aiResp, err := s.provider.Respond(ctx, fairy.Request{
		UserMessage: req.Message,
		Level:       user.Level,
		History:     history,
	})
	if err != nil {
		s.logger.Error("Chat", "Fairy provider failed", map[string]interface{}{
			"anonymous_id": req.AnonymousID,
			"error":        err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrFairyUnavailable, err)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	fairyMsg := entity.Message{
		Id:      uuid.New(),
		UserId:  user.Id,
		Role:    constant.ChatMessageRoleFairy,
		Content: aiResp.Message,
		IsDeep:  aiResp.IsDeep,
		Analysis: &entity.DepthAnalysis{
			EmotionalIntensity: aiResp.EmotionalIntensity,
		},
		AffectionGained: aiResp.AffectionGained,
		CreatedAt:       time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &fairyMsg); err != nil {
		return nil, fmt.Errorf("store fairy message: %w", err)
	}

	previousLevel := user.Level

	user.Points += aiResp.AffectionGained
	user.TotalConversations++
	if aiResp.IsDeep {
		user.DeepConversations++
	}
	user.Level = affection.LevelFor(user.Points)

	if user.Level >= constant.CommunityUnlockLevel && !user.CommunityUnlocked {
		user.CommunityUnlocked = true
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user progression: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishProgression(ctx, user, previousLevel)

	return &dto.ChatResponse{
		Message:           aiResp.Message,
		AffectionGained:   aiResp.AffectionGained,
		NewLevel:          user.Level,
		NewPoints:         user.Points,
		CommunityUnlocked: user.CommunityUnlocked,
	}, nil
}

// findOrCreateUser resolves the anonymous id, creating a fresh profile
// on first contact, and applies the daily-visit streak rules.
func (s *chatService) findOrCreateUser(ctx context.Context, uow unitofwork.UnitOfWork, anonymousID string, now time.Time) (*entity.User, error) {
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByAnonymousID{AnonymousID: anonymousID})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		user = &entity.User{
			Id:            uuid.New(),
			AnonymousId:   anonymousID,
			Level:         affection.MinLevel,
			LastVisitDate: now,
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return user, nil
	}

	gap := affection.CalendarDays(user.LastVisitDate, now)
	streak, bonus := affection.NextStreak(user.ConsecutiveDays, gap)
	user.ConsecutiveDays = streak
	user.Points += bonus
	user.Level = affection.LevelFor(user.Points)
	user.LastVisitDate = now

	return user, nil
}

func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]fairy.Message, error) {
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: constant.ChatHistoryWindow},
	)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	// Reverse into chronological order and map roles for the model.
	history := make([]fairy.Message, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		role := "user"
		if msg.Role == constant.ChatMessageRoleFairy {
			role = "assistant"
		}
		history = append(history, fairy.Message{Role: role, Content: msg.Content})
	}
	return history, nil
}

func (s *chatService) publishProgression(ctx context.Context, user *entity.User, previousLevel int) {
	if s.publisher == nil {
		return
	}
	if user.Level > previousLevel {
		if err := s.publisher.PublishLevelUp(ctx, user.AnonymousId, previousLevel, user.Level); err != nil {
			s.logger.Warn("Chat", "Failed to publish level-up event", map[string]interface{}{"error": err.Error()})
		}
	}
	if user.CommunityUnlocked && previousLevel < constant.CommunityUnlockLevel && user.Level >= constant.CommunityUnlockLevel {
		if err := s.publisher.PublishCommunityUnlock(ctx, user.AnonymousId, user.Level); err != nil {
			s.logger.Warn("Chat", "Failed to publish community-unlock event", map[string]interface{}{"error": err.Error()})
		}
	}
}
