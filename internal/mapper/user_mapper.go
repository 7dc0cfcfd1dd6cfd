package mapper

import (
	"saedam-be/internal/entity"
	"saedam-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                 u.Id,
		AnonymousId:        u.AnonymousId,
		Level:              u.Level,
		Points:             u.Points,
		TotalConversations: u.TotalConversations,
		DeepConversations:  u.DeepConversations,
		ConsecutiveDays:    u.ConsecutiveDays,
		LastVisitDate:      u.LastVisitDate,
		CommunityUnlocked:  u.CommunityUnlocked,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                 u.Id,
		AnonymousId:        u.AnonymousId,
		Level:              u.Level,
		Points:             u.Points,
		TotalConversations: u.TotalConversations,
		DeepConversations:  u.DeepConversations,
		ConsecutiveDays:    u.ConsecutiveDays,
		LastVisitDate:      u.LastVisitDate,
		CommunityUnlocked:  u.CommunityUnlocked,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
