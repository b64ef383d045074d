package mapper

import (
	"jobreach-be/internal/entity"
	"jobreach-be/internal/model"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.GeneratedMessage) *entity.GeneratedMessage {
	if msg == nil {
		return nil
	}
	return &entity.GeneratedMessage{
		Id:              msg.Id,
		UserId:          msg.UserId,
		ContactId:       msg.ContactId,
		Subject:         msg.Subject,
		Body:            msg.Body,
		Version:         msg.Version,
		Selected:        msg.Selected,
		SourceSessionId: msg.SourceSessionId,
		CreatedAt:       msg.CreatedAt,
		UpdatedAt:       msg.UpdatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.GeneratedMessage) *model.GeneratedMessage {
	if msg == nil {
		return nil
	}
	return &model.GeneratedMessage{
		Id:              msg.Id,
		UserId:          msg.UserId,
		ContactId:       msg.ContactId,
		Subject:         msg.Subject,
		Body:            msg.Body,
		Version:         msg.Version,
		Selected:        msg.Selected,
		SourceSessionId: msg.SourceSessionId,
		CreatedAt:       msg.CreatedAt,
		UpdatedAt:       msg.UpdatedAt,
	}
}

func (m *MessageMapper) ToEntities(messages []*model.GeneratedMessage) []*entity.GeneratedMessage {
	entities := make([]*entity.GeneratedMessage, len(messages))
	for i, msg := range messages {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
