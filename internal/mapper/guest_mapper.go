package mapper

import (
	"time"

	"gorm.io/datatypes"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/model"
)

type GuestMapper struct{}

func NewGuestMapper() *GuestMapper {
	return &GuestMapper{}
}

func (m *GuestMapper) SessionToEntity(s *model.GuestSession) *entity.GuestSession {
	if s == nil {
		return nil
	}
	return &entity.GuestSession{
		SessionId:         s.SessionId,
		GuestProfile:      jsonToRaw(s.GuestProfile),
		GuestSummary:      jsonToRaw(s.GuestSummary),
		GuestContact:      jsonToRaw(s.GuestContact),
		GeneratedMessages: jsonToRaw(s.GeneratedMessages),
		SelectedMessage:   jsonToRaw(s.SelectedMessage),
		SelectedVersion:   s.SelectedVersion,
		LinkedUserId:      s.LinkedUserId,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *GuestMapper) SessionToModel(s *entity.GuestSession) *model.GuestSession {
	if s == nil {
		return nil
	}
	var linkedAt *time.Time
	if s.LinkedUserId != nil {
		t := s.UpdatedAt
		linkedAt = &t
	}
	return &model.GuestSession{
		SessionId:         s.SessionId,
		GuestProfile:      rawToJSON(s.GuestProfile),
		GuestSummary:      rawToJSON(s.GuestSummary),
		GuestContact:      rawToJSON(s.GuestContact),
		GeneratedMessages: rawToJSON(s.GeneratedMessages),
		SelectedMessage:   rawToJSON(s.SelectedMessage),
		SelectedVersion:   s.SelectedVersion,
		LinkedUserId:      s.LinkedUserId,
		LinkedAt:          linkedAt,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *GuestMapper) AttemptToEntity(a *model.LinkAttempt) *entity.LinkAttempt {
	if a == nil {
		return nil
	}
	return &entity.LinkAttempt{
		Id:        a.Id,
		SessionId: a.SessionId,
		UserId:    a.UserId,
		Origin:    a.Origin,
		Linked:    a.Linked,
		Success:   a.Success,
		Attempts:  a.Attempts,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (m *GuestMapper) AttemptToModel(a *entity.LinkAttempt) *model.LinkAttempt {
	if a == nil {
		return nil
	}
	return &model.LinkAttempt{
		Id:        a.Id,
		SessionId: a.SessionId,
		UserId:    a.UserId,
		Origin:    a.Origin,
		Linked:    a.Linked,
		Success:   a.Success,
		Attempts:  a.Attempts,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func jsonToRaw(j datatypes.JSON) []byte {
	if len(j) == 0 {
		return nil
	}
	return []byte(j)
}

func rawToJSON(b []byte) datatypes.JSON {
	if len(b) == 0 {
		return nil
	}
	return datatypes.JSON(b)
}
