package mapper

import (
	"jobreach-be/internal/entity"
	"jobreach-be/internal/model"
)

type NetworkMapper struct{}

func NewNetworkMapper() *NetworkMapper {
	return &NetworkMapper{}
}

func (m *NetworkMapper) CompanyToEntity(c *model.Company) *entity.Company {
	if c == nil {
		return nil
	}
	return &entity.Company{
		Id:              c.Id,
		UserId:          c.UserId,
		Name:            c.Name,
		Industry:        c.Industry,
		Size:            c.Size,
		Location:        c.Location,
		Website:         c.Website,
		Rationale:       c.Rationale,
		Status:          entity.CompanyStatus(c.Status),
		SourceSessionId: c.SourceSessionId,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *NetworkMapper) CompanyToModel(c *entity.Company) *model.Company {
	if c == nil {
		return nil
	}
	return &model.Company{
		Id:              c.Id,
		UserId:          c.UserId,
		Name:            c.Name,
		Industry:        c.Industry,
		Size:            c.Size,
		Location:        c.Location,
		Website:         c.Website,
		Rationale:       c.Rationale,
		Status:          string(c.Status),
		SourceSessionId: c.SourceSessionId,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *NetworkMapper) CompaniesToEntities(companies []*model.Company) []*entity.Company {
	entities := make([]*entity.Company, len(companies))
	for i, c := range companies {
		entities[i] = m.CompanyToEntity(c)
	}
	return entities
}

func (m *NetworkMapper) ContactToEntity(c *model.Contact) *entity.Contact {
	if c == nil {
		return nil
	}
	return &entity.Contact{
		Id:              c.Id,
		UserId:          c.UserId,
		CompanyId:       c.CompanyId,
		FullName:        c.FullName,
		Title:           c.Title,
		Email:           c.Email,
		LinkedInURL:     c.LinkedInURL,
		Notes:           c.Notes,
		SourceSessionId: c.SourceSessionId,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *NetworkMapper) ContactToModel(c *entity.Contact) *model.Contact {
	if c == nil {
		return nil
	}
	return &model.Contact{
		Id:              c.Id,
		UserId:          c.UserId,
		CompanyId:       c.CompanyId,
		FullName:        c.FullName,
		Title:           c.Title,
		Email:           c.Email,
		LinkedInURL:     c.LinkedInURL,
		Notes:           c.Notes,
		SourceSessionId: c.SourceSessionId,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *NetworkMapper) ContactsToEntities(contacts []*model.Contact) []*entity.Contact {
	entities := make([]*entity.Contact, len(contacts))
	for i, c := range contacts {
		entities[i] = m.ContactToEntity(c)
	}
	return entities
}

func (m *NetworkMapper) InteractionToEntity(in *model.Interaction) *entity.Interaction {
	if in == nil {
		return nil
	}
	return &entity.Interaction{
		Id:         in.Id,
		UserId:     in.UserId,
		ContactId:  in.ContactId,
		Kind:       entity.InteractionKind(in.Kind),
		Notes:      in.Notes,
		OccurredAt: in.OccurredAt,
		CreatedAt:  in.CreatedAt,
		UpdatedAt:  in.UpdatedAt,
	}
}

func (m *NetworkMapper) InteractionToModel(in *entity.Interaction) *model.Interaction {
	if in == nil {
		return nil
	}
	return &model.Interaction{
		Id:         in.Id,
		UserId:     in.UserId,
		ContactId:  in.ContactId,
		Kind:       string(in.Kind),
		Notes:      in.Notes,
		OccurredAt: in.OccurredAt,
		CreatedAt:  in.CreatedAt,
		UpdatedAt:  in.UpdatedAt,
	}
}

func (m *NetworkMapper) InteractionsToEntities(interactions []*model.Interaction) []*entity.Interaction {
	entities := make([]*entity.Interaction, len(interactions))
	for i, in := range interactions {
		entities[i] = m.InteractionToEntity(in)
	}
	return entities
}
