package mapper

import (
	"encoding/json"

	"saedam-be/internal/entity"
	"saedam-be/internal/model"

	"gorm.io/datatypes"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var analysis *entity.DepthAnalysis
	if len(msg.Analysis) > 0 {
		var decoded entity.DepthAnalysis
		if err := json.Unmarshal(msg.Analysis, &decoded); err == nil {
			analysis = &decoded
		}
	}

	return &entity.Message{
		Id:              msg.Id,
		UserId:          msg.UserId,
		Role:            msg.Role,
		Content:         msg.Content,
		IsDeep:          msg.IsDeep,
		AffectionGained: msg.AffectionGained,
		Analysis:        analysis,
		CreatedAt:       msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var analysis datatypes.JSON
	if msg.Analysis != nil {
		if encoded, err := json.Marshal(msg.Analysis); err == nil {
			analysis = datatypes.JSON(encoded)
		}
	}

	return &model.Message{
		Id:              msg.Id,
		UserId:          msg.UserId,
		Role:            msg.Role,
		Content:         msg.Content,
		IsDeep:          msg.IsDeep,
		AffectionGained: msg.AffectionGained,
		Analysis:        analysis,
		CreatedAt:       msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(models []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(models))
	for i, msg := range models {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
